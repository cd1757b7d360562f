package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/SketchShifter/portfolio_backend/internal/models"
	"github.com/SketchShifter/portfolio_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechStackRepository_Statistics(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewTechStackRepository(db)
	ctx := context.Background()

	fe := fx.JobGroup("Frontend")
	be := fx.JobGroup("Backend")
	fx.TechStack("React", fe.ID)
	fx.TechStack("Vue", fe.ID)
	fx.TechStack("Go", be.ID)
	fx.Portfolio("a", "alice", fe.ID, testutil.WithSkills("React", "Go"))
	fx.Portfolio("b", "alice", fe.ID, testutil.WithSkills("React"))
	fx.Portfolio("c", "alice", be.ID, testutil.WithSkills("Go", "Unknown"))
	fx.Portfolio("d", "alice", be.ID, testutil.WithSkills("Go"))

	all, err := repo.Statistics(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Go", all[0].Skill)
	assert.Equal(t, int64(3), all[0].TotalCount)
	assert.Equal(t, "React", all[1].Skill)
	assert.Equal(t, int64(2), all[1].TotalCount)
	assert.Equal(t, "Vue", all[2].Skill)
	assert.Zero(t, all[2].TotalCount)

	frontend, err := repo.Statistics(ctx, &fe.ID)
	require.NoError(t, err)
	require.Len(t, frontend, 2)
	assert.Equal(t, "React", frontend[0].Skill)
	assert.Equal(t, fe.ID, frontend[0].JobGroupID)
}

func TestTechStackRepository_List(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewTechStackRepository(db)

	fe := fx.JobGroup("Frontend")
	fx.TechStack("Vue", fe.ID)
	fx.TechStack("Angular", fe.ID)

	stacks, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stacks, 2)
	assert.Equal(t, "Angular", stacks[0].SkillName)
	assert.Equal(t, "#201E50", stacks[0].BgColor)
}

func TestJobGroupRepository(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewJobGroupRepository(db)
	ctx := context.Background()

	fx.JobGroup("Frontend")
	be := fx.JobGroup("Backend")

	groups, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Backend", groups[0].Name)

	got, err := repo.FindByName(ctx, "Backend")
	require.NoError(t, err)
	assert.Equal(t, be.ID, got.ID)

	_, err = repo.FindByName(ctx, "Design")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = repo.FindByID(ctx, 999)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUserRepository_FindByUserID(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixture(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	fx.User("alice", "Alice")

	user, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = repo.FindByUserID(ctx, "nobody")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
