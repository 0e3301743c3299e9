package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	clubModel "campussphere_backend/internals/features/clubs/model"
	"campussphere_backend/internals/helpers/workflow"
	"campussphere_backend/internals/testutil"
)

func TestCreatePendingDuplicateBlocked(t *testing.T) {
	db := testutil.OpenTestDB(t)

	first := clubModel.ClubTagRequestModel{UserID: 1, ClubID: 2}
	require.NoError(t, workflow.CreatePending(db, &first))

	second := clubModel.ClubTagRequestModel{UserID: 1, ClubID: 2}
	err := workflow.CreatePending(db, &second)
	assert.ErrorIs(t, err, workflow.ErrDuplicatePending)

	// Pasangan lain tidak terpengaruh.
	other := clubModel.ClubTagRequestModel{UserID: 1, ClubID: 3}
	assert.NoError(t, workflow.CreatePending(db, &other))
}

func TestCreatePendingAllowedAfterTerminal(t *testing.T) {
	db := testutil.OpenTestDB(t)

	first := clubModel.ClubTagRequestModel{UserID: 1, ClubID: 2}
	require.NoError(t, workflow.CreatePending(db, &first))
	require.NoError(t, db.Model(&first).Update("status", workflow.StatusRejected).Error)

	// Index partial hanya menjaga pending: request baru boleh masuk.
	again := clubModel.ClubTagRequestModel{UserID: 1, ClubID: 2}
	assert.NoError(t, workflow.CreatePending(db, &again))
}

func TestReviewUnauthorized(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := workflow.Review(db, workflow.StatusPending, workflow.StatusApproved,
		[]string{workflow.StatusApproved, workflow.StatusRejected},
		false,
		func(tx *gorm.DB) error { t.Fatal("apply must not run"); return nil })
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)
}

func TestReviewInvalidDecision(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := workflow.Review(db, workflow.StatusPending, "maybe",
		[]string{workflow.StatusApproved, workflow.StatusRejected},
		true,
		func(tx *gorm.DB) error { t.Fatal("apply must not run"); return nil })
	assert.ErrorIs(t, err, workflow.ErrInvalidDecision)
}

func TestReviewTerminalStateBlocked(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := workflow.Review(db, workflow.StatusApproved, workflow.StatusRejected,
		[]string{workflow.StatusApproved, workflow.StatusRejected},
		true,
		func(tx *gorm.DB) error { t.Fatal("apply must not run"); return nil })
	assert.ErrorIs(t, err, workflow.ErrTerminalState)
}

func TestReviewAppliesDecision(t *testing.T) {
	db := testutil.OpenTestDB(t)

	applied := false
	err := workflow.Review(db, workflow.StatusPending, workflow.StatusApproved,
		[]string{workflow.StatusApproved, workflow.StatusRejected},
		true,
		func(tx *gorm.DB) error { applied = true; return nil })
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, workflow.IsTerminal(workflow.StatusPending))
	assert.True(t, workflow.IsTerminal(workflow.StatusApproved))
	assert.True(t, workflow.IsTerminal(workflow.StatusAccepted))
	assert.True(t, workflow.IsTerminal(workflow.StatusRejected))
}
