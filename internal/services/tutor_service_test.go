package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
)

func TestTutorService_DeleteCascadesSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.tutors()

	created, err := svc.Create(ctx, &CreateTutorRequest{Name: "T", Email: "t@x.com", Expertise: "Math"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.MemberCreated)

	env.createSession(t, "Ann", "t@x.com", "Mathematics", "60")
	env.createSession(t, "Bob", "T@X.com", "Algebra", "45")
	kept := env.createSession(t, "Cid", "other@x.com", "Physics", "30")

	result, err := svc.Delete(ctx, created.Tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, &TutorDeleteResult{TutorDeleted: 1, MemberDeleted: 1, SessionsDeleted: 2}, result)

	assert.Equal(t, int64(0), env.count(t, &models.Tutor{}, ""))
	assert.Equal(t, int64(0), env.count(t, &models.Member{}, "role = ?", models.RoleTutor))

	sessions, err := env.sessions().Query(ctx, nil)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, kept.ID, sessions[0].ID)

	_, err = svc.Delete(ctx, created.Tutor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, env.publisher.EventsOfType(events.TutorDeleted), 1)
}

func TestTutorService_SameEmailAsStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.students().Create(ctx, &CreateStudentRequest{Name: "P", Email: "p@x.com", Year: "Sr"})
	require.NoError(t, err)
	result, err := env.tutors().Create(ctx, &CreateTutorRequest{Name: "P", Email: "p@x.com", Expertise: "Chemistry"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MemberCreated)

	assert.Equal(t, int64(2), env.count(t, &models.Member{}, "email = ?", "p@x.com"))

	_, err = env.tutors().Create(ctx, &CreateTutorRequest{Name: "Q", Email: "p@x.com", Expertise: "Biology"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTutorService_UpdateMovesMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.tutors()

	created, err := svc.Create(ctx, &CreateTutorRequest{Name: "T", Email: "t@x.com", Expertise: "Math"})
	require.NoError(t, err)

	email := "t2@x.com"
	result, err := svc.Update(ctx, created.Tutor.ID, &UpdateTutorRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TutorUpdated)
	assert.Equal(t, int64(1), result.MemberUpdated)
	assert.Equal(t, "Math", result.Tutor.Expertise)

	_, err = env.repo.Member().GetByEmail(ctx, "t2@x.com", models.RoleTutor)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), env.count(t, &models.Member{}, "email = ?", "t@x.com"))
}

func TestTutorService_UpdateWithFailingMemberWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.tutors().Create(ctx, &CreateTutorRequest{Name: "T", Email: "t@x.com", Expertise: "Math"})
	require.NoError(t, err)

	repo := env.withBrokenMembers(&brokenMembers{updateErr: errStoreDown})
	svc := NewTutorService(repo, env.publisher, env.logger, env.validator)

	name := "Tess"
	result, err := svc.Update(ctx, created.Tutor.ID, &UpdateTutorRequest{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, int64(1), result.TutorUpdated)
	assert.Equal(t, int64(0), result.MemberUpdated)

	tutor, err := env.tutors().GetByID(ctx, created.Tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tess", tutor.Name)
}
