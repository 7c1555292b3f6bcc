// Package engine wires gap analysis, eligibility resolution, the assignment
// oracle, and proposal validation into the single ProposeShifts entry point.
// The pipeline is stateless: every invocation derives everything fresh from
// its inputs and persists nothing.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arnavshah/storeshift-api/pkg/eligibility"
	"github.com/arnavshah/storeshift-api/pkg/gap"
	"github.com/arnavshah/storeshift-api/pkg/models"
	"github.com/arnavshah/storeshift-api/pkg/oracle"
)

// Store is the read side the engine consumes. Implementations back it with
// whatever persistence the deployment uses; tests use in-memory fakes.
type Store interface {
	Roster(ctx context.Context, storeID string) ([]models.Staff, error)
	Requirements(ctx context.Context, storeID string, dayOfWeek int) ([]models.Requirement, error)
	AvailabilityPatterns(ctx context.Context, storeID string, dayOfWeek int) ([]models.AvailabilityPattern, error)
	TimeOffRequests(ctx context.Context, storeID, date string) ([]models.TimeOffRequest, error)
	ShiftsForDay(ctx context.Context, storeID, date string) ([]models.ExistingShift, error)
}

// Engine runs the gap-analysis and assisted-assignment pipeline
type Engine struct {
	store  Store
	oracle oracle.Oracle
	log    *zap.Logger
}

// New creates an engine. A nil oracle is allowed; proposing then fails with
// an oracle error instead of at startup. A nil logger disables logging.
func New(store Store, orc oracle.Oracle, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, oracle: orc, log: log}
}

// ProposeShifts measures staffing shortfall for one store date, asks the
// oracle to fill it, and returns the validated result. Terminal outcomes:
// fully covered (no oracle call), no candidates (no oracle call), oracle
// failure (error propagated verbatim), or a validated proposal set.
// Nothing is committed; the caller decides what to do with the result.
func (e *Engine) ProposeShifts(ctx context.Context, date, storeID string) (*models.ProposalResult, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", models.ErrInvalidInput, date)
	}
	dayOfWeek := int(day.Weekday())

	invocation := uuid.NewString()
	log := e.log.With(
		zap.String("invocation", invocation),
		zap.String("store", storeID),
		zap.String("date", date),
	)

	// The four input sets are independent reads; fetch them concurrently.
	var (
		reqs     []models.Requirement
		roster   []models.Staff
		patterns []models.AvailabilityPattern
		timeOff  []models.TimeOffRequest
		shifts   []models.ExistingShift
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		reqs, err = e.store.Requirements(gctx, storeID, dayOfWeek)
		return err
	})
	g.Go(func() (err error) {
		roster, err = e.store.Roster(gctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		patterns, err = e.store.AvailabilityPatterns(gctx, storeID, dayOfWeek)
		return err
	})
	g.Go(func() (err error) {
		timeOff, err = e.store.TimeOffRequests(gctx, storeID, date)
		return err
	})
	g.Go(func() (err error) {
		shifts, err = e.store.ShiftsForDay(gctx, storeID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}

	gaps, err := gap.AnalyzeGaps(reqs, shifts)
	if err != nil {
		return nil, err
	}
	before, err := gap.CoverageRate(reqs, shifts)
	if err != nil {
		return nil, err
	}

	if len(gaps) == 0 {
		log.Info("staffing fully covered, no proposal needed")
		return &models.ProposalResult{
			Date:           date,
			BeforeCoverage: before,
			AfterCoverage:  before,
			AcceptedShifts: []models.ProposedShift{},
			UnfilledSlots:  []models.UnfilledSlot{},
		}, nil
	}

	ranges := gap.GroupConsecutiveGaps(gaps)

	candidates, err := eligibility.ResolveCandidates(roster, patterns, timeOff, shifts, date, dayOfWeek)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		log.Info("shortage with no eligible staff",
			zap.Int("gap_slots", len(gaps)),
			zap.Int("gap_ranges", len(ranges)))
		unfilled := make([]models.UnfilledSlot, 0, len(ranges))
		for _, r := range ranges {
			unfilled = append(unfilled, models.UnfilledSlot{
				TimeRange: r.StartTime + "-" + r.EndTime,
				Reason:    "no staff available",
			})
		}
		return &models.ProposalResult{
			Date:           date,
			BeforeCoverage: before,
			AfterCoverage:  before,
			AcceptedShifts: []models.ProposedShift{},
			UnfilledSlots:  unfilled,
		}, nil
	}

	req, err := oracle.BuildRequest(date, storeID, ranges, candidates, shifts)
	if err != nil {
		return nil, err
	}

	if e.oracle == nil {
		return nil, fmt.Errorf("%w: not configured", oracle.ErrOracle)
	}

	log.Info("requesting assignment proposal",
		zap.Int("gap_ranges", len(ranges)),
		zap.Int("candidates", len(candidates)))
	resp, err := e.oracle.Propose(ctx, req)
	if err != nil {
		// One attempt, no retry, no fabricated partial result.
		return nil, err
	}

	accepted, rejections := validateProposals(resp.ProposedShifts, candidates, shifts)
	for _, rej := range rejections {
		log.Warn("proposed shift rejected",
			zap.String("staff_id", rej.shift.StaffID),
			zap.String("window", rej.shift.StartTime+"-"+rej.shift.EndTime),
			zap.String("reason", rej.reason))
	}

	// Recompute coverage from scratch over existing plus accepted shifts;
	// the oracle's own estimate is never used.
	virtual := make([]models.ExistingShift, 0, len(shifts)+len(accepted))
	virtual = append(virtual, shifts...)
	for _, sh := range accepted {
		virtual = append(virtual, models.ExistingShift{
			StaffID:   sh.StaffID,
			StaffName: sh.StaffName,
			Date:      date,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
		})
	}
	after, err := gap.CoverageRate(reqs, virtual)
	if err != nil {
		return nil, err
	}

	unfilled := resp.UnfilledSlots
	if unfilled == nil {
		unfilled = []models.UnfilledSlot{}
	}

	log.Info("proposal validated",
		zap.Int("proposed", len(resp.ProposedShifts)),
		zap.Int("accepted", len(accepted)),
		zap.Int("rejected", len(rejections)),
		zap.Int("before_coverage", before),
		zap.Int("after_coverage", after))

	return &models.ProposalResult{
		Date:           date,
		BeforeCoverage: before,
		AfterCoverage:  after,
		AcceptedShifts: accepted,
		UnfilledSlots:  unfilled,
	}, nil
}
