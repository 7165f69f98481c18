package render

import (
	"html/template"
	"io"
	"sort"

	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
)

// FileGroups flattens the active commits to lines, groups them by file
// and sorts the groups by line count, largest first. Each group is
// colored by the type of its first line.
func FileGroups(ds *commits.Dataset, active []models.Commit, palette *Palette) []models.FileGroup {
	lines := ds.LinesOf(active)

	index := make(map[string]int)
	var groups []models.FileGroup
	for _, l := range lines {
		i, ok := index[l.File]
		if !ok {
			i = len(groups)
			index[l.File] = i
			groups = append(groups, models.FileGroup{
				Name:  l.File,
				Type:  l.Type,
				Color: palette.Color(l.Type),
			})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Lines) != len(groups[j].Lines) {
			return len(groups[i].Lines) > len(groups[j].Lines)
		}
		return groups[i].Name < groups[j].Name
	})

	if groups == nil {
		groups = []models.FileGroup{}
	}
	return groups
}

type fileView struct {
	Name  string
	Type  string
	Count int
	Color template.CSS
	Dots  []struct{}
}

// Files writes one row per file with one unit dot per line. Rows carry
// their file name as data-key so the page can transition by key.
func Files(w io.Writer, groups []models.FileGroup) error {
	if w == nil {
		return errors.ContainerError("files: no output container")
	}

	views := make([]fileView, len(groups))
	for i, g := range groups {
		views[i] = fileView{
			Name:  g.Name,
			Type:  g.Type,
			Count: g.Count(),
			Color: template.CSS(g.Color),
			Dots:  make([]struct{}, g.Count()),
		}
	}

	return templates.ExecuteTemplate(w, "files.tmpl", views)
}
