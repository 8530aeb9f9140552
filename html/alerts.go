package html

import (
	"html/template"
	"io"
	"net/http"

	_ "embed"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stocknet.GO/api"
	"stocknet.GO/html/parts"
	alertRepo "stocknet.GO/model/repository/alert"
)

// Template is the echo renderer used for server-rendered pages.
type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

//go:embed templates/alerts.html
var alertsPage string

func init() {
	api.RegisterHTMLModule(RegisterAlertHTMLRoutes)
}

// RegisterAlertHTMLRoutes registers the server-rendered alert dashboard.
func RegisterAlertHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	tmpl := template.Must(template.New("alerts").Parse(alertsPage))

	e.GET("/dashboard/alerts", func(c echo.Context) error {
		alerts, err := alertRepo.NewAlertRepository(db).List(c.QueryParam("warehouseId"))
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error fetching alerts")
		}
		css, _ := parts.GetCriticalCSS()
		data := map[string]interface{}{
			"Alerts":      alerts,
			"CriticalCSS": template.CSS(css),
		}
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return tmpl.Execute(c.Response(), data)
	})
}
