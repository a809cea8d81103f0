package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The services lean on the schema, not application code, for these
// guarantees: racing inserts must converge on a single row, and a lesson
// links at most one quiz.
func TestSchemaDeclaresUniquenessConstraints(t *testing.T) {
	assert.Contains(t, schema, "CONSTRAINT uq_enrollments_course_user UNIQUE (course_id, user_id)")
	assert.Contains(t, schema, "CONSTRAINT uq_certificates_course_user UNIQUE (course_id, user_id)")
	assert.Contains(t, schema, "CONSTRAINT uq_quizzes_lesson UNIQUE (lesson_id)")
	assert.Contains(t, schema, "PRIMARY KEY (enrollment_id, lesson_id)")
}
