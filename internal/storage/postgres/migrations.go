package postgres

import (
	"context"
	"fmt"
)

// Schema is applied at startup. Uniqueness of (course_id, user_id) on
// enrollments and certificates is enforced here, not only in application
// code: racing inserts must converge on a single row.
const schema = `
CREATE TABLE IF NOT EXISTS courses (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    instructor_id UUID NOT NULL,
    instructor_name TEXT NOT NULL DEFAULT '',
    enrolled_count INTEGER NOT NULL DEFAULT 0,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_enrolled_count CHECK (enrolled_count >= 0)
);

CREATE TABLE IF NOT EXISTS modules (
    id UUID PRIMARY KEY,
    course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    module_order INTEGER NOT NULL,

    CONSTRAINT uq_modules_course_order UNIQUE (course_id, module_order)
);

CREATE TABLE IF NOT EXISTS lessons (
    id UUID PRIMARY KEY,
    course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    module_id UUID NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    content_kind TEXT NOT NULL,
    lesson_order INTEGER NOT NULL,
    quiz_id UUID,

    CONSTRAINT uq_lessons_module_order UNIQUE (module_id, lesson_order),
    CONSTRAINT valid_content_kind CHECK (content_kind IN ('video', 'text', 'quiz'))
);

CREATE TABLE IF NOT EXISTS enrollments (
    id UUID PRIMARY KEY,
    course_id UUID NOT NULL REFERENCES courses(id),
    user_id UUID NOT NULL,
    progress INTEGER NOT NULL DEFAULT 0,
    enrolled_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ,
    certificate_id UUID,

    CONSTRAINT uq_enrollments_course_user UNIQUE (course_id, user_id),
    CONSTRAINT valid_progress CHECK (progress >= 0 AND progress <= 100)
);

CREATE TABLE IF NOT EXISTS enrollment_lessons (
    enrollment_id UUID NOT NULL REFERENCES enrollments(id) ON DELETE CASCADE,
    lesson_id UUID NOT NULL,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    PRIMARY KEY (enrollment_id, lesson_id)
);

CREATE TABLE IF NOT EXISTS quizzes (
    id UUID PRIMARY KEY,
    course_id UUID NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    lesson_id UUID NOT NULL,
    title TEXT NOT NULL,
    passing_score INTEGER NOT NULL,

    CONSTRAINT uq_quizzes_lesson UNIQUE (lesson_id),
    CONSTRAINT valid_passing_score CHECK (passing_score >= 0 AND passing_score <= 100)
);

CREATE TABLE IF NOT EXISTS questions (
    id UUID PRIMARY KEY,
    quiz_id UUID NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
    prompt TEXT NOT NULL,
    question_type TEXT NOT NULL,
    options JSONB NOT NULL,
    correct_answer INTEGER NOT NULL,
    question_order INTEGER NOT NULL,

    CONSTRAINT valid_question_type CHECK (question_type IN ('single_choice', 'true_false'))
);

CREATE TABLE IF NOT EXISTS quiz_attempts (
    id UUID PRIMARY KEY,
    quiz_id UUID NOT NULL REFERENCES quizzes(id),
    user_id UUID NOT NULL,
    answers JSONB NOT NULL,
    score INTEGER NOT NULL,
    passed BOOLEAN NOT NULL,
    attempted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_quiz_attempts_quiz_user ON quiz_attempts(quiz_id, user_id);

CREATE TABLE IF NOT EXISTS certificates (
    id UUID PRIMARY KEY,
    course_id UUID NOT NULL REFERENCES courses(id),
    user_id UUID NOT NULL,
    student_name TEXT NOT NULL,
    course_title TEXT NOT NULL,
    instructor_name TEXT NOT NULL,
    issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT uq_certificates_course_user UNIQUE (course_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_enrollments_user ON enrollments(user_id);
CREATE INDEX IF NOT EXISTS idx_certificates_user ON certificates(user_id);
`

func (p *Storage) Migrate(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
