// search.go implements the search tool, delegating to internal/search
// for the track-changes-aware scan.

package action

import "github.com/jpl-au/writerd/internal/search"

func searchFind(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "text search"); err != nil {
		return nil, err
	}
	query, err := p.String("query")
	if err != nil {
		return nil, err
	}

	matches, err := search.Find(doc, query)
	if err != nil {
		return nil, err
	}
	if max := r.maxMatches(); len(matches) > max {
		matches = matches[:max]
	}
	if matches == nil {
		matches = []search.Match{}
	}
	return Result{
		"matches":              matches,
		"count":                len(matches),
		"track_changes_active": doc.TrackChangesActive(),
	}, nil
}

func searchReplace(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "text search"); err != nil {
		return nil, err
	}
	old, err := p.String("old")
	if err != nil {
		return nil, err
	}
	new, err := p.String("new")
	if err != nil {
		return nil, err
	}

	res, err := search.Replace(doc, old, new, r.authorFor(p))
	if err != nil {
		return nil, err
	}
	out := Result{"replaced": res.Replaced, "old": old, "new": new}
	if res.Replaced {
		out["position"] = res.Position
	}
	return out, nil
}

func searchReplaceAll(r *Router, p Params) (Result, error) {
	doc, err := r.current()
	if err != nil {
		return nil, err
	}
	if err := requireWriter(doc, "text search"); err != nil {
		return nil, err
	}
	old, err := p.String("old")
	if err != nil {
		return nil, err
	}
	new, err := p.String("new")
	if err != nil {
		return nil, err
	}

	count, err := search.ReplaceAll(doc, old, new, r.authorFor(p))
	if err != nil {
		return nil, err
	}
	return Result{"count": count, "old": old, "new": new}, nil
}
