package router

// AppTitle is the application title and the fallback page title.
const AppTitle = "Rusty Words"

// Rusty Words views.
const (
	ViewWordList    ViewID = "WordList"
	ViewAddWord     ViewID = "AddWord"
	ViewWordDetails ViewID = "WordDetails"
	ViewEditWord    ViewID = "EditWord"
)

// ParamWordID is the path parameter naming a word.
const ParamWordID = "wordId"

// DefaultRoutes returns the Rusty Words route table in declaration order.
func DefaultRoutes() []RouteDefinition {
	return []RouteDefinition{
		{
			Path: "/",
			View: ViewWordList,
			Meta: PageMeta{Title: AppTitle},
		},
		{
			Path: "/add",
			View: ViewAddWord,
			Meta: PageMeta{Title: "Add Word | " + AppTitle},
		},
		{
			Path:  "/word/:" + ParamWordID,
			View:  ViewWordDetails,
			Meta:  PageMeta{Title: "Word Details | " + AppTitle},
			Props: true,
		},
		{
			Path:  "/edit/:" + ParamWordID,
			View:  ViewEditWord,
			Meta:  PageMeta{Title: "Edit Word | " + AppTitle},
			Props: true,
		},
		{
			Path:     "/*",
			Redirect: DefaultPath,
		},
	}
}

// MustDefaultTable builds the Rusty Words route table.
func MustDefaultTable() *Table {
	return MustNewTable(DefaultRoutes()...)
}
