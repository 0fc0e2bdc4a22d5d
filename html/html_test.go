package html

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"procure.GO/core/flash"
	"procure.GO/core/testdb"
	"procure.GO/model/entity"
)

type client struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	db := testdb.Open(t)
	testdb.SeedParts(t, db, testdb.Part("P100", 10, "2.50"), testdb.Part("P200", 1, "4.00"))

	f := &flash.Flasher{Store: flash.NewMemoryStore(time.Minute)}
	e := echo.New()
	e.Use(flash.Middleware())
	e.Renderer = NewTemplate()
	RegisterOrderHTMLRoutes(e, db, f)
	RegisterImportHTMLRoutes(e, db, f, nil)
	return &client{t: t, e: e, db: db}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flash.CookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c.do(req)
}

func formValues(lines ...[3]string) url.Values {
	v := url.Values{"supplier": {"ACME"}, "creation_date": {"2024-02-01"}, "status": {"open"}}
	for i, l := range lines {
		p := "lines-" + strconv.Itoa(i) + "-"
		v.Set(p+"part_number", l[0])
		v.Set(p+"quantity", l[1])
		v.Set(p+"req_date", l[2])
	}
	return v
}

func TestAddForm_FiveBlankLines(t *testing.T) {
	c := newClient(t)
	rec := c.get("/add")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="lines-4-part_number"`)
	assert.NotContains(t, body, `name="lines-5-part_number"`)

	rec = c.get("/new_po")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/add", rec.Header().Get(echo.HeaderLocation))
}

func TestAdd_CreatesOrder(t *testing.T) {
	c := newClient(t)
	rec := c.postForm("/add", formValues(
		[3]string{"P100", "3", "2024-03-01"},
		[3]string{"", "", ""},
		[3]string{"P200", "2.0", "2024-03-02"},
	))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, "PO PO-0001 created successfully. Total: 33.00. Quantity raised to the minimum order quantity: item 1 to 10.")
	assert.Equal(t, 1, strings.Count(body, `class="alert `))

	var po entity.PurchaseOrder
	require.NoError(t, c.db.Preload("Lines").First(&po).Error)
	assert.Equal(t, "PO-0001", po.Number())
	assert.Len(t, po.Lines, 2)

	rec = c.get("/")
	assert.Contains(t, rec.Body.String(), `href="/view/PO-0001"`)
	assert.NotContains(t, rec.Body.String(), "created successfully", "flash is shown once")
}

func TestAdd_Errors(t *testing.T) {
	c := newClient(t)

	rec := c.postForm("/add", formValues([3]string{"NOPE", "1", "2024-03-01"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Part NOPE does not exist")
	assert.Contains(t, rec.Body.String(), `value="NOPE"`, "submitted values are kept")

	rec = c.postForm("/add", formValues([3]string{"P100", "1.5", "2024-03-01"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "must_be_whole")

	rec = c.postForm("/add", formValues())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one line required")

	var count int64
	c.db.Model(&entity.PurchaseOrder{}).Count(&count)
	assert.Zero(t, count)
}

func createOrder(t *testing.T, c *client) {
	t.Helper()
	rec := c.postForm("/add", formValues(
		[3]string{"P100", "10", "2024-03-01"},
		[3]string{"P200", "5", "2024-03-02"},
	))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestView(t *testing.T) {
	c := newClient(t)
	createOrder(t, c)

	rec := c.get("/view/po-0001")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>PO-0001</h1>")
	assert.Contains(t, body, "45.00")
	assert.Contains(t, body, "2024-03-02")

	rec = c.get("/view/PO-0404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PO not found.")
}

func TestSearch(t *testing.T) {
	c := newClient(t)
	createOrder(t, c)

	rec := c.get("/search_po?po_code=+po-0001+")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/view/PO-0001", rec.Header().Get(echo.HeaderLocation))

	rec = c.get("/search_po?po_code=PO-0404&current_po=PO-0001")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/view/PO-0001", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, c.get("/view/PO-0001").Body.String(), "PO &#39;PO-0404&#39; not found")

	rec = c.get("/search_po?po_code=")
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, c.get("/").Body.String(), "Please enter a PO number to search")
}

func TestDeleteLine(t *testing.T) {
	c := newClient(t)
	createOrder(t, c)
	var lines []entity.POLine
	require.NoError(t, c.db.Order("item").Find(&lines).Error)

	rec := c.get("/po/PO-0001/delete_line/" + itoa(lines[0].ID))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/view/PO-0001", rec.Header().Get(echo.HeaderLocation))
	body := c.get("/view/PO-0001").Body.String()
	assert.Contains(t, body, "Line deleted. New total: 20.00")
	assert.NotContains(t, body, "<td>P100</td>")

	rec = c.get("/po/PO-0001/delete_line/" + itoa(lines[0].ID))
	assert.Equal(t, "/view/PO-0001", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, c.get("/view/PO-0001").Body.String(), "Line not found in this PO.")

	rec = c.get("/po/PO-0404/delete_line/" + itoa(lines[1].ID))
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	var count int64
	c.db.Model(&entity.POLine{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func uploadCSV(c *client, filename, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, _ := w.CreateFormFile("file", filename)
	fw.Write([]byte(content))
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return c.do(req)
}

func TestImport(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusOK, c.get("/import").Code)

	csv := "part_number,moq,unit,unit_price,supplier,lead_time,family,description\n" +
		"P100,1,pcs,1,ACME,1,f,existing\n" +
		"P300,1,pcs,1,ACME,1,f,new\n" +
		"P301,x,pcs,1,ACME,1,f,broken\n"
	rec := uploadCSV(c, "parts.csv", csv)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	body := c.get("/").Body.String()
	assert.Contains(t, body, "1 successfully imported articles.")
	assert.Contains(t, body, "1 parts already existed")
	assert.Contains(t, body, "line 4 (P301)")

	rec = uploadCSV(c, "parts.xls", csv)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, c.get("/").Body.String(), "Not a valid file, please use a valid CSV file.")
}
