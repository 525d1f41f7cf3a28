// internal/app/store/assignments/reconcile.go
package assignmentstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ClearedReference is a student detached from a mentor that no longer exists.
type ClearedReference struct {
	StudentID primitive.ObjectID `json:"student_id"`
	MentorID  primitive.ObjectID `json:"mentor_id"`
}

// RosterRepair is a roster rewritten by Reconcile.
type RosterRepair struct {
	MentorID primitive.ObjectID `json:"mentor_id"`
	Before   int                `json:"before"`
	After    int                `json:"after"`
}

// ReconcileReport summarizes one Reconcile pass. Cleared and Repaired list
// only writes that were applied.
type ReconcileReport struct {
	MentorsScanned  int                `json:"mentors_scanned"`
	StudentsScanned int                `json:"students_scanned"`
	Cleared         []ClearedReference `json:"cleared"`
	Repaired        []RosterRepair     `json:"repaired"`
	// Deferred counts repairs skipped because a concurrent write touched the
	// same document after it was scanned. The next pass picks them up.
	Deferred int `json:"deferred"`
}

// Clean reports whether the pass found nothing to fix.
func (r ReconcileReport) Clean() bool {
	return len(r.Cleared) == 0 && len(r.Repaired) == 0
}

// Reconcile treats each student's back-reference as authoritative and
// rewrites the denormalized rosters to match it:
//   - students pointing at a missing mentor are detached
//   - each roster keeps, in order and once, the entries whose student
//     points back at that mentor, followed by any such students it lacked
//
// The scans are a snapshot, so every write is conditional on the document
// still looking the way the scan saw it. A reference is cleared only if its
// mentor is still missing and the student still names it; a roster is
// swapped only if it is unchanged since the scan. Anything that moved in
// between is counted as deferred and left alone.
//
// Reconcile reads both collections in full. It is meant for the startup
// hook, the background worker and the admin endpoint.
func (s *Store) Reconcile(ctx context.Context) (ReconcileReport, error) {
	report := ReconcileReport{
		Cleared:  []ClearedReference{},
		Repaired: []RosterRepair{},
	}

	var mentors []models.Mentor
	exists := map[primitive.ObjectID]struct{}{}
	if err := s.mentors.ForEach(ctx, func(m models.Mentor) error {
		mentors = append(mentors, m)
		exists[m.ID] = struct{}{}
		return nil
	}); err != nil {
		return report, fmt.Errorf("scan mentors: %w", err)
	}
	report.MentorsScanned = len(mentors)
	s.hooks.run(s.hooks.afterMentorScan)

	var dangling []ClearedReference
	backRefs := map[primitive.ObjectID][]primitive.ObjectID{}
	if err := s.students.ForEachAssigned(ctx, func(st models.Student) error {
		report.StudentsScanned++
		mid := *st.Mentor
		if _, ok := exists[mid]; !ok {
			dangling = append(dangling, ClearedReference{StudentID: st.ID, MentorID: mid})
			return nil
		}
		backRefs[mid] = append(backRefs[mid], st.ID)
		return nil
	}); err != nil {
		return report, fmt.Errorf("scan students: %w", err)
	}
	s.hooks.run(s.hooks.afterStudentScan)

	for _, c := range dangling {
		cleared, err := s.clearDangling(ctx, c)
		if err != nil {
			return report, fmt.Errorf("clear dangling mentor of student %s: %w", c.StudentID.Hex(), err)
		}
		if !cleared {
			report.Deferred++
			continue
		}
		report.Cleared = append(report.Cleared, c)
	}

	for _, m := range mentors {
		if sameIDs(m.Students, DesiredRoster(m.Students, backRefs[m.ID])) {
			continue
		}
		repair, swapped, err := s.repairRoster(ctx, m)
		if err != nil {
			return report, fmt.Errorf("repair roster of mentor %s: %w", m.ID.Hex(), err)
		}
		switch {
		case !swapped:
			report.Deferred++
		case repair != nil:
			report.Repaired = append(report.Repaired, *repair)
		}
	}

	if !report.Clean() || report.Deferred > 0 {
		s.log.Info("reconcile repaired mentor/student links",
			zap.Int("cleared", len(report.Cleared)),
			zap.Int("rosters_repaired", len(report.Repaired)),
			zap.Int("deferred", report.Deferred))
	}
	return report, nil
}

// clearDangling detaches c.StudentID from c.MentorID if that mentor is still
// missing and the student still names it.
func (s *Store) clearDangling(ctx context.Context, c ClearedReference) (bool, error) {
	ok, err := s.mentors.Exists(ctx, c.MentorID)
	if err != nil {
		return false, err
	}
	if ok {
		// created after the mentor scan
		return false, nil
	}
	return s.students.SetMentorIf(ctx, c.StudentID, &c.MentorID, nil)
}

// repairRoster recomputes the roster of m from fresh back-references and
// swaps it in if the stored roster still equals m.Students. A nil repair
// with swapped set means the fresh read showed nothing left to fix.
func (s *Store) repairRoster(ctx context.Context, m models.Mentor) (*RosterRepair, bool, error) {
	var repair *RosterRepair
	swapped := true
	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		repair, swapped = nil, true

		fresh, err := s.students.IDsReferencing(ctx, m.ID)
		if err != nil {
			return err
		}
		want := DesiredRoster(m.Students, fresh)
		if sameIDs(m.Students, want) {
			return nil
		}

		swapped, err = s.mentors.SwapRoster(ctx, m.ID, m.Students, want)
		if err != nil || !swapped {
			return err
		}
		repair = &RosterRepair{MentorID: m.ID, Before: len(m.Students), After: len(want)}
		return nil
	})
	return repair, swapped, err
}

// DesiredRoster computes the roster a mentor should have given its current
// roster and the students whose back-reference names it.
func DesiredRoster(roster, backRefs []primitive.ObjectID) []primitive.ObjectID {
	want := make([]primitive.ObjectID, 0, len(backRefs))
	for _, id := range models.UniqueIDs(roster) {
		if models.ContainsID(backRefs, id) {
			want = append(want, id)
		}
	}
	return models.AppendUnique(want, backRefs...)
}

func sameIDs(a, b []primitive.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
