package tessera

import (
	"context"

	"github.com/dailymotion/tessera-gen/internal/dashboard"
)

// Result describes a published dashboard.
type Result struct {
	ID      string
	Created bool
}

// Publish sends meta and doc through gw. An empty meta.ID creates a new
// dashboard; otherwise the existing dashboard's metadata is replaced. The
// definition is written last, pointing at the final id.
//
// Nothing is rolled back: if the definition update fails after the
// metadata step succeeded, the error is returned as is and the server keeps
// the new metadata.
func Publish(ctx context.Context, gw Gateway, meta dashboard.Metadata, doc *dashboard.Document) (Result, error) {
	res := Result{ID: meta.ID}

	if res.ID == "" {
		id, err := gw.CreateDashboard(ctx, meta)
		if err != nil {
			return Result{}, err
		}
		res.ID = id
		res.Created = true
	} else if err := gw.UpdateMetadata(ctx, res.ID, meta); err != nil {
		return Result{}, err
	}

	if err := gw.UpdateDefinition(ctx, res.ID, doc.WithDashboardID(res.ID)); err != nil {
		return res, err
	}
	return res, nil
}
