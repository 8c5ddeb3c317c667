package template

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/ghaggin/policy-portal/internal/model"
	"github.com/ghaggin/policy-portal/web"
)

const (
	templateDir string = "tmpl"
)

type Data struct {
	PageTitle string
	Alert     string
	User      *model.User
	Page      any
}

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}

// Render executes tmpl inside base.html and writes it with status. Nothing
// is written if the template fails.
func Render(w http.ResponseWriter, status int, tmpl string, td *Data) error {
	t, err := template.New("base.html").Funcs(funcs).ParseFS(web.Templates,
		templateDir+"/"+"base.html",
		templateDir+"/"+tmpl,
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.Execute(buf, td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
