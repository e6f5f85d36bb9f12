// track.go implements the track_changes tool: the two tracking booleans,
// the pending revision list, accept/reject by index, the bulk folds, and
// a diff preview of what accepting everything would produce.

package action

import (
	"github.com/jpl-au/writerd/internal/diff"
	"github.com/jpl-au/writerd/internal/editor"
)

func trackStatus(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "track changes"); err != nil {
		return nil, err
	}

	st := doc.TrackStatus()
	return Result{
		"recording":     st.Recording,
		"showing":       st.Showing,
		"pending_count": st.PendingCount,
	}, nil
}

func trackEnable(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	show := p.BoolDefault("show", true)

	if err := doc.SetTracking(true, show); err != nil {
		return nil, err
	}
	return Result{"recording": true, "showing": show}, nil
}

func trackDisable(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	showing := doc.TrackStatus().Showing
	if err := doc.SetTracking(false, showing); err != nil {
		return nil, err
	}
	return Result{"recording": false, "showing": showing}, nil
}

func trackList(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	changes, err := doc.Revisions()
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = []editor.RevisionInfo{}
	}
	return Result{"changes": changes, "count": len(changes)}, nil
}

func trackAccept(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	index, err := p.Int("index")
	if err != nil {
		return nil, err
	}

	if err := doc.Accept(index); err != nil {
		return nil, err
	}
	return Result{"index": index, "remaining": doc.TrackStatus().PendingCount}, nil
}

func trackReject(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	index, err := p.Int("index")
	if err != nil {
		return nil, err
	}

	if err := doc.Reject(index); err != nil {
		return nil, err
	}
	return Result{"index": index, "remaining": doc.TrackStatus().PendingCount}, nil
}

func trackAcceptAll(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	count, err := doc.AcceptAll()
	if err != nil {
		return nil, err
	}
	return Result{"count": count}, nil
}

func trackRejectAll(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}

	count, err := doc.RejectAll()
	if err != nil {
		return nil, err
	}
	return Result{"count": count}, nil
}

// trackPreview diffs the text as currently shown against the text as it
// would read with every pending change accepted. With nothing pending
// the diff is empty.
func trackPreview(r *Router, _ Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "track changes"); err != nil {
		return nil, err
	}

	shown := doc.VisibleText()
	if doc.TrackStatus().Showing {
		shown = doc.Text()
	}
	d := diff.Compute(shown, doc.VisibleText(), "shown", "accepted")

	return Result{
		"diff":          d.Diff,
		"changed":       d.Changed(),
		"pending_count": doc.TrackStatus().PendingCount,
	}, nil
}
