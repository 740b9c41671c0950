package server

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/Houeta/collection-desk/internal/models"
	"github.com/Houeta/collection-desk/internal/services/editor"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/*.html"),
)

type basePage struct {
	Title string
	User  string
}

type loginPage struct {
	basePage
	Username string
	Error    string
}

type collectionRow struct {
	ID             int
	Name           string
	Manual         bool
	Conditions     []string
	SalesChannelID int
}

type collectionsPage struct {
	basePage
	Rows       []collectionRow
	Page       int
	Pages      int
	Prev, Next int
}

type sortOption struct {
	Key      models.SortKey
	Label    string
	Selected bool
}

type editPage struct {
	basePage
	ID         int
	View       editor.Snapshot
	Notice     string
	Confirming bool
	NoProducts bool
	NoMatches  bool
	Failed     bool
	Sorts      []sortOption
}

type errorPage struct {
	basePage
	Message string
	Back    string
}

func newCollectionsPage(user string, collections []models.Collection, page, size int) collectionsPage {
	total := max(1, (len(collections)+size-1)/size)
	page = min(max(page, 1), total)

	start := min((page-1)*size, len(collections))
	end := min(start+size, len(collections))

	rows := make([]collectionRow, 0, end-start)
	for _, c := range collections[start:end] {
		row := collectionRow{
			ID:             c.ID,
			Name:           c.Info.Name,
			Manual:         c.IsManual(),
			SalesChannelID: c.SalesChannelID,
		}
		for _, f := range c.Filters.Filters {
			row.Conditions = append(row.Conditions, f.Describe())
		}
		rows = append(rows, row)
	}

	data := collectionsPage{
		basePage: basePage{Title: "Collections", User: user},
		Rows:     rows,
		Page:     page,
		Pages:    total,
	}
	if page > 1 {
		data.Prev = page - 1
	}
	if page < total {
		data.Next = page + 1
	}

	return data
}

func newEditPage(user string, id int, view editor.Snapshot, notice string) editPage {
	sorts := make([]sortOption, 0, 3)
	for _, key := range []models.SortKey{models.SortNone, models.SortByName, models.SortByCode} {
		sorts = append(sorts, sortOption{Key: key, Label: key.Label(), Selected: key == view.Filters.SortBy})
	}

	return editPage{
		basePage:   basePage{Title: view.Header.CollectionName, User: user},
		ID:         id,
		View:       view,
		Notice:     notice,
		Confirming: view.State == editor.StateConfirmingSave,
		NoProducts: view.Empty == editor.EmptyNoProducts,
		NoMatches:  view.Empty == editor.EmptyNoMatches,
		Failed:     view.State == editor.StateError,
		Sorts:      sorts,
	}
}

func editURL(id int, notice string) string {
	query := url.Values{"id": {strconv.Itoa(id)}}
	if notice != "" {
		query.Set("notice", notice)
	}
	return "/edit?" + query.Encode()
}
