package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/oracle"
)

const (
	testDate  = "2025-06-02" // a Monday
	testStore = "store-1"
)

type fakeStore struct {
	roster   []models.Staff
	reqs     []models.Requirement
	patterns []models.AvailabilityPattern
	timeOff  []models.TimeOffRequest
	shifts   []models.ExistingShift
	err      error
}

func (f *fakeStore) Roster(ctx context.Context, storeID string) ([]models.Staff, error) {
	return f.roster, f.err
}

func (f *fakeStore) Requirements(ctx context.Context, storeID string, dayOfWeek int) ([]models.Requirement, error) {
	return f.reqs, f.err
}

func (f *fakeStore) AvailabilityPatterns(ctx context.Context, storeID string, dayOfWeek int) ([]models.AvailabilityPattern, error) {
	return f.patterns, f.err
}

func (f *fakeStore) TimeOffRequests(ctx context.Context, storeID, date string) ([]models.TimeOffRequest, error) {
	return f.timeOff, f.err
}

func (f *fakeStore) ShiftsForDay(ctx context.Context, storeID, date string) ([]models.ExistingShift, error) {
	return f.shifts, f.err
}

type fakeOracle struct {
	resp  *oracle.Response
	err   error
	calls int
	last  *oracle.Request
}

func (f *fakeOracle) Propose(ctx context.Context, req *oracle.Request) (*oracle.Response, error) {
	f.calls++
	f.last = req
	return f.resp, f.err
}

func requirement(slot, count int) models.Requirement {
	return models.Requirement{StoreID: testStore, DayOfWeek: 1, Slot: slot, RequiredCount: count}
}

func existing(staffID, start, end string) models.ExistingShift {
	return models.ExistingShift{StaffID: staffID, StaffName: "Staff " + staffID, Date: testDate, StartTime: start, EndTime: end}
}

func availability(staffID, start, end string) models.AvailabilityPattern {
	return models.AvailabilityPattern{StaffID: staffID, DayOfWeek: 1, StartTime: start, EndTime: end}
}

func TestProposeShifts_FullyCovered(t *testing.T) {
	st := &fakeStore{
		reqs:   []models.Requirement{requirement(36, 1)}, // 18:00 needs 1
		shifts: []models.ExistingShift{existing("a", "17:00", "19:00")},
	}
	orc := &fakeOracle{}
	e := New(st, orc, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)
	assert.Equal(t, 100, result.BeforeCoverage)
	assert.Equal(t, 100, result.AfterCoverage)
	assert.Empty(t, result.AcceptedShifts)
	assert.Empty(t, result.UnfilledSlots)
	assert.Equal(t, 0, orc.calls, "fully covered day must not call the oracle")
}

func TestProposeShifts_NoCandidates(t *testing.T) {
	st := &fakeStore{
		reqs:   []models.Requirement{requirement(36, 2), requirement(37, 2)}, // 18:00-19:00
		roster: []models.Staff{{ID: "a", Name: "Alice"}},
		// Alice has no pattern for Monday, so nobody is eligible.
	}
	orc := &fakeOracle{}
	e := New(st, orc, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)
	assert.Equal(t, result.BeforeCoverage, result.AfterCoverage)
	assert.Empty(t, result.AcceptedShifts)
	require.Len(t, result.UnfilledSlots, 1)
	assert.Equal(t, "18:00-19:00", result.UnfilledSlots[0].TimeRange)
	assert.Equal(t, "no staff available", result.UnfilledSlots[0].Reason)
	assert.Equal(t, 0, orc.calls, "no-candidate day must not call the oracle")
}

func TestProposeShifts_NoCandidates_RangePerGroup(t *testing.T) {
	st := &fakeStore{
		reqs: []models.Requirement{requirement(18, 1), requirement(22, 1)}, // 09:00 and 11:00
	}
	e := New(st, &fakeOracle{}, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)
	require.Len(t, result.UnfilledSlots, 2)
	assert.Equal(t, "09:00-09:30", result.UnfilledSlots[0].TimeRange)
	assert.Equal(t, "11:00-11:30", result.UnfilledSlots[1].TimeRange)
}

func TestProposeShifts_OracleError(t *testing.T) {
	oracleErr := errors.New("model timed out")
	st := &fakeStore{
		reqs:     []models.Requirement{requirement(36, 1)},
		roster:   []models.Staff{{ID: "a", Name: "Alice"}},
		patterns: []models.AvailabilityPattern{availability("a", "09:00", "21:00")},
	}
	orc := &fakeOracle{err: oracleErr}
	e := New(st, orc, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	assert.Nil(t, result, "oracle failure must not produce a partial result")
	assert.ErrorIs(t, err, oracleErr, "oracle error must be propagated verbatim")
	assert.Equal(t, 1, orc.calls, "exactly one attempt, no retry")
}

func TestProposeShifts_NilOracle(t *testing.T) {
	st := &fakeStore{
		reqs:     []models.Requirement{requirement(36, 1)},
		roster:   []models.Staff{{ID: "a", Name: "Alice"}},
		patterns: []models.AvailabilityPattern{availability("a", "09:00", "21:00")},
	}
	e := New(st, nil, nil)

	_, err := e.ProposeShifts(context.Background(), testDate, testStore)
	assert.ErrorIs(t, err, oracle.ErrOracle)
}

func TestProposeShifts_BadDate(t *testing.T) {
	e := New(&fakeStore{}, &fakeOracle{}, nil)
	_, err := e.ProposeShifts(context.Background(), "junk", testStore)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestProposeShifts_StoreError(t *testing.T) {
	loadErr := errors.New("connection refused")
	e := New(&fakeStore{err: loadErr}, &fakeOracle{}, nil)
	_, err := e.ProposeShifts(context.Background(), testDate, testStore)
	assert.ErrorIs(t, err, loadErr)
}

// The 18:00 scenario: requirement of 3, one existing shift, two candidates.
// The oracle proposes both for 18:00-20:00 but the second is only available
// from 19:00, so it must be rejected and coverage must reflect two staff.
func TestProposeShifts_ValidatesOracleOutput(t *testing.T) {
	st := &fakeStore{
		reqs:   []models.Requirement{requirement(36, 3)}, // 18:00-18:30 needs 3
		shifts: []models.ExistingShift{existing("c", "17:00", "19:00")},
		roster: []models.Staff{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
		patterns: []models.AvailabilityPattern{
			availability("a", "17:00", "21:00"),
			availability("b", "19:00", "22:00"),
		},
	}
	orc := &fakeOracle{resp: &oracle.Response{
		ProposedShifts: []models.ProposedShift{
			{StaffID: "a", StaffName: "Alice", StartTime: "18:00", EndTime: "20:00"},
			{StaffID: "b", StaffName: "Bob", StartTime: "18:00", EndTime: "20:00"},
		},
	}}
	e := New(st, orc, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)

	require.Len(t, result.AcceptedShifts, 1)
	assert.Equal(t, "a", result.AcceptedShifts[0].StaffID)

	// 1 existing + 1 accepted of 3 required: 2/3 => 67%, still short by one.
	assert.Equal(t, 33, result.BeforeCoverage)
	assert.Equal(t, 67, result.AfterCoverage)
	assert.GreaterOrEqual(t, result.AfterCoverage, result.BeforeCoverage)

	// The request carried both candidates and the existing shift.
	require.NotNil(t, orc.last)
	assert.Len(t, orc.last.Candidates, 2)
	assert.Len(t, orc.last.ExistingShifts, 1)
}

func TestProposeShifts_AllProposalsRejected(t *testing.T) {
	st := &fakeStore{
		reqs:     []models.Requirement{requirement(36, 1)},
		roster:   []models.Staff{{ID: "a", Name: "Alice"}},
		patterns: []models.AvailabilityPattern{availability("a", "10:00", "18:00")},
	}
	orc := &fakeOracle{resp: &oracle.Response{
		ProposedShifts: []models.ProposedShift{
			// Starts before the candidate's 10:00 availability.
			{StaffID: "a", StaffName: "Alice", StartTime: "09:00", EndTime: "13:00"},
		},
		UnfilledSlots: []models.UnfilledSlot{{TimeRange: "18:00-18:30", Reason: "insufficient staff"}},
	}}
	e := New(st, orc, nil)

	result, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)
	assert.Empty(t, result.AcceptedShifts)
	assert.Equal(t, result.BeforeCoverage, result.AfterCoverage)
	// Oracle-reported unfilled slots are echoed through.
	require.Len(t, result.UnfilledSlots, 1)
	assert.Equal(t, "insufficient staff", result.UnfilledSlots[0].Reason)
}

func TestProposeShifts_EligibilityFeedsOracle(t *testing.T) {
	st := &fakeStore{
		reqs:   []models.Requirement{requirement(36, 2)},
		roster: []models.Staff{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
		patterns: []models.AvailabilityPattern{
			availability("a", "09:00", "21:00"),
			availability("b", "09:00", "21:00"),
		},
		timeOff: []models.TimeOffRequest{{
			StaffID: "b", Date: testDate, Status: models.TimeOffApproved,
		}},
	}
	orc := &fakeOracle{resp: &oracle.Response{}}
	e := New(st, orc, nil)

	_, err := e.ProposeShifts(context.Background(), testDate, testStore)
	require.NoError(t, err)
	require.NotNil(t, orc.last)
	require.Len(t, orc.last.Candidates, 1, "staff on approved full-day leave must not reach the oracle")
	assert.Equal(t, "a", orc.last.Candidates[0].StaffID)
}
