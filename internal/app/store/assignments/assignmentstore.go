// internal/app/store/assignments/assignmentstore.go
package assignmentstore

// The mentor/student link is stored twice: mentors.students (the roster)
// and students.mentor (the back-reference). Every write path in this
// package keeps the two halves in step:
//   - a student referenced by mentor M appears on M's roster (once)
//   - a student references at most one mentor
//
// Writes for one operation run inside a transaction when the deployment
// supports it. Otherwise they run sequentially and Reconcile repairs any
// divergence a partial failure leaves behind.

import (
	"context"
	"errors"
	"fmt"

	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	studentstore "github.com/dalemusser/mentorhub/internal/app/store/students"
	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrMentorNotFound  = mentorstore.ErrNotFound
	ErrStudentNotFound = studentstore.ErrNotFound

	// ErrDanglingMentor means a student's back-reference names a mentor
	// that no longer exists, so it cannot be removed from that roster.
	ErrDanglingMentor = errors.New("student references a missing mentor")

	// ErrConcurrentChange means the student's back-reference changed between
	// being read and being rewritten, so the reassignment was not applied.
	ErrConcurrentChange = errors.New("student was reassigned concurrently")
)

type Store struct {
	db       *mongo.Database
	mentors  *mentorstore.Store
	students *studentstore.Store
	log      *zap.Logger
	hooks    reconcileHooks
}

// reconcileHooks lets tests interleave writes between the scan phases of
// Reconcile. Both are nil in production.
type reconcileHooks struct {
	afterMentorScan  func()
	afterStudentScan func()
}

func (h reconcileHooks) run(fn func()) {
	if fn != nil {
		fn()
	}
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:       db,
		mentors:  mentorstore.New(db),
		students: studentstore.New(db),
		log:      logger,
	}
}

// BulkResult reports which candidates a bulk assignment linked and which it
// left alone (unknown, already assigned, or claimed concurrently).
type BulkResult struct {
	Assigned []primitive.ObjectID
	Skipped  []primitive.ObjectID
}

// AssignUnassigned links every candidate that exists and has no mentor to
// mentorID. Candidates already assigned to any mentor, this one included,
// are skipped rather than moved.
//
// Student back-references are written first, one at a time, stopping at the
// first failure; the roster is extended afterwards with a duplicate check.
func (s *Store) AssignUnassigned(ctx context.Context, mentorID primitive.ObjectID, candidates []primitive.ObjectID) (BulkResult, error) {
	if _, err := s.mentors.GetByID(ctx, mentorID); err != nil {
		return BulkResult{}, err
	}

	candidates = models.UniqueIDs(candidates)
	eligible, err := s.students.UnassignedIDs(ctx, candidates)
	if err != nil {
		return BulkResult{}, fmt.Errorf("filter unassigned students: %w", err)
	}

	var claimed []primitive.ObjectID
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		claimed = claimed[:0]
		for _, sid := range eligible {
			ok, err := s.students.AssignIfUnassigned(ctx, sid, mentorID)
			if err != nil {
				// Outside a transaction nothing rolls the claims back, so keep
				// what was already claimed on the roster rather than leave
				// orphaned back-references.
				if len(claimed) > 0 && !txn.Active(ctx) {
					if rerr := s.mentors.AddStudents(ctx, mentorID, claimed...); rerr != nil {
						s.log.Warn("roster compensation failed",
							zap.String("mentor_id", mentorID.Hex()),
							zap.Int("claimed", len(claimed)),
							zap.Error(rerr))
					}
				}
				return err
			}
			if ok {
				claimed = append(claimed, sid)
			}
		}
		return s.mentors.AddStudents(ctx, mentorID, claimed...)
	})

	res := BulkResult{
		Assigned: append([]primitive.ObjectID{}, claimed...),
		Skipped:  []primitive.ObjectID{},
	}
	for _, id := range candidates {
		if !models.ContainsID(res.Assigned, id) {
			res.Skipped = append(res.Skipped, id)
		}
	}
	if err != nil {
		return res, fmt.Errorf("assign students to mentor %s: %w", mentorID.Hex(), err)
	}
	return res, nil
}

// ReassignResult describes the outcome of Reassign.
type ReassignResult struct {
	MentorID         primitive.ObjectID
	StudentID        primitive.ObjectID
	PreviousMentorID *primitive.ObjectID
	// Changed is false when the student was already linked to the target.
	Changed bool
}

// Reassign assigns studentID to mentorID, first removing it from the roster
// of any previous mentor. The target mentor is resolved before the student,
// so a request naming two missing entities reports the mentor.
func (s *Store) Reassign(ctx context.Context, studentID, mentorID primitive.ObjectID) (ReassignResult, error) {
	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		return ReassignResult{}, err
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return ReassignResult{}, err
	}

	res := ReassignResult{
		MentorID:         mentorID,
		StudentID:        studentID,
		PreviousMentorID: student.Mentor,
		Changed:          !(student.AssignedTo(mentorID) && mentor.HasStudent(studentID)),
	}
	if !res.Changed {
		return res, nil
	}

	// The back-reference is claimed first and only if it still names the
	// mentor read above, so two concurrent reassignments cannot both move
	// the student and leave it on two rosters.
	hasPrev := student.IsAssigned() && !student.AssignedTo(mentorID)
	err = txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		if hasPrev {
			exists, err := s.mentors.Exists(ctx, *student.Mentor)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%w: student %s, mentor %s", ErrDanglingMentor, studentID.Hex(), student.Mentor.Hex())
			}
		}

		claimed, err := s.students.SetMentorIf(ctx, studentID, student.Mentor, &mentorID)
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("%w: student %s", ErrConcurrentChange, studentID.Hex())
		}

		if hasPrev {
			if err := s.mentors.RemoveStudent(ctx, *student.Mentor, studentID); err != nil {
				return err
			}
		}
		return s.mentors.AddStudents(ctx, mentorID, studentID)
	})
	if err != nil {
		return res, fmt.Errorf("reassign student %s: %w", studentID.Hex(), err)
	}
	return res, nil
}

// MentorStudents returns the mentor's roster expanded to full student
// records, in roster order. Roster entries that no longer resolve are omitted.
func (s *Store) MentorStudents(ctx context.Context, mentorID primitive.ObjectID) ([]models.Student, error) {
	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return s.students.ByIDs(ctx, mentor.Students)
}

// StudentMentor returns the student's mentor, or nil when the student is
// unassigned or its reference no longer resolves.
func (s *Store) StudentMentor(ctx context.Context, studentID primitive.ObjectID) (*models.Mentor, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.IsAssigned() {
		return nil, nil
	}

	mentor, err := s.mentors.GetByID(ctx, *student.Mentor)
	if err != nil {
		if errors.Is(err, mentorstore.ErrNotFound) {
			s.log.Warn("student references missing mentor",
				zap.String("student_id", studentID.Hex()),
				zap.String("mentor_id", student.Mentor.Hex()))
			return nil, nil
		}
		return nil, err
	}
	return &mentor, nil
}
