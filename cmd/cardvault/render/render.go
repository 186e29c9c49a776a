package render

import "cardvault/internal/view"

type Renderer interface {
	RenderCollection(v CollectionView) string
	RenderResults(v ResultsView) string
}

type CollectionView struct {
	Entries []view.Entry
	Mode    view.DisplayMode
}

func (v CollectionView) IsEmpty() bool {
	return len(v.Entries) == 0
}

type ResultsView struct {
	Results []view.Result
	Mode    view.DisplayMode
	// Notice replaces the list when there are no results.
	Notice string
}

func (v ResultsView) IsEmpty() bool {
	return len(v.Results) == 0
}
