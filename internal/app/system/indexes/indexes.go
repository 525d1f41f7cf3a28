// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	studentstore "github.com/dalemusser/mentorhub/internal/app/store/students"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called from the EnsureSchema hook. Each ensure* function is
idempotent. Problems are aggregated so startup reports all of them at once.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureMentors(ctx, db, logger); err != nil {
		problems = append(problems, mentorstore.Collection+": "+err.Error())
	}
	if err := ensureStudents(ctx, db, logger); err != nil {
		problems = append(problems, studentstore.Collection+": "+err.Error())
	}
	if err := ensureAssignmentEvents(ctx, db, logger); err != nil {
		problems = append(problems, audit.Collection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collections                                                                */
/* -------------------------------------------------------------------------- */

func ensureMentors(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(mentorstore.Collection), logger, []mongo.IndexModel{
		{
			// GET /mentors ordering
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_mentors_nameci_id"),
		},
		{
			// which roster lists a student
			Keys:    bson.D{{Key: "students", Value: 1}},
			Options: options.Index().SetName("idx_mentors_students"),
		},
	})
}

func ensureStudents(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(studentstore.Collection), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_students_nameci_id"),
		},
		{
			// unassigned filter, reconcile scan
			Keys:    bson.D{{Key: "mentor", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_students_mentor_id"),
		},
	})
}

func ensureAssignmentEvents(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection(audit.Collection), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_events_student_ts"),
		},
		{
			Keys:    bson.D{{Key: "batch_id", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("idx_events_batch_ts"),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_events_ts"),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(p *bool) bool {
	return p != nil && *p
}

func sameBoolPtr(a, b *bool) bool {
	return boolVal(a) == boolVal(b)
}

// Mongo/DocDB returns IndexOptionsConflict when an index with the same keys
// already exists under a different name.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// listIndexes returns the collection's indexes keyed by key signature.
func listIndexes(ctx context.Context, coll *mongo.Collection, logger *zap.Logger) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		// collection may not exist yet
		return existing
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			logger.Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, models []mongo.IndexModel) error {
	var errs []string
	existing := listIndexes(ctx, coll, logger)

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", boolVal(unique)))
		start := time.Now()

		ex, found := existing[sig]
		if found && sameBoolPtr(unique, ex.Unique) && (name == "" || ex.Name == name) {
			log.Debug("reusing existing index", zap.Duration("took", time.Since(start)))
			continue
		}

		// Same keys under another name or with other options: replace it.
		if found {
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil && isOptionsConflictErr(err) {
			// Another node created it between list and create.
			if ex, ok := listIndexes(ctx, coll, logger)[sig]; ok && sameBoolPtr(unique, ex.Unique) {
				log.Info("reusing existing index (post-conflict)", zap.String("existing", ex.Name))
				continue
			}
		}
		if err != nil {
			log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}

		log.Info("index ensured",
			zap.String("created_name", created),
			zap.Bool("replaced", found),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
