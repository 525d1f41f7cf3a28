// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Everything here is built once in ConnectDB and shared by the later hooks.
// The pointers stay valid across hooks even though DBDeps is passed by value.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Audit      *auditlog.Logger
	Metrics    *metrics.Collector
	Reconciler *workers.Reconciler
}
