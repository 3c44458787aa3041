package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/exp/slog"

	"mgtboard/internal/app/client/config"
	"mgtboard/internal/domain/inventory"
	"mgtboard/internal/domain/pkg"
	"mgtboard/internal/domain/registry"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Client вызывает HTTP API mgtboard.
type Client struct {
	http *httpClient
	log  *slog.Logger
}

// ServerStatus ответ GET /status.
type ServerStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// packageBody тело запроса на запись, серверные метки времени не отправляются.
type packageBody struct {
	Name              string      `json:"pkg_name"`
	Type              pkg.PkgType `json:"pkg_type"`
	Version           string      `json:"pkg_version"`
	Size              int64       `json:"pkg_size,omitempty"`
	DownloadURL       string      `json:"download_url,omitempty"`
	UpdateDesc        string      `json:"update_desc,omitempty"`
	MD5               string      `json:"md5,omitempty"`
	IsForceUpdate     bool        `json:"is_force_update,omitempty"`
	MinAndroidVersion string      `json:"min_android_version,omitempty"`
	MinIOSVersion     string      `json:"min_ios_version,omitempty"`
	MinBoxVersion     string      `json:"min_box_version,omitempty"`
}

func New(cfg *config.Config, log *slog.Logger) *Client {
	log = log.With("component", "mgtboard_client")
	return &Client{
		http: newHTTPClient(cfg, log),
		log:  log,
	}
}

func (c *Client) Status(ctx context.Context) (*ServerStatus, error) {
	var st ServerStatus
	if err := c.http.doJSON(ctx, http.MethodGet, "/status", nil, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Publish сохраняет новую версию пакета.
func (c *Client) Publish(ctx context.Context, p pkg.Package) (*pkg.Package, error) {
	var out pkg.Package
	if err := c.http.doJSON(ctx, http.MethodPost, "/api/v1/packages", nil, toBody(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, p pkg.Package) (*pkg.Package, error) {
	var out pkg.Package
	if err := c.http.doJSON(ctx, http.MethodPut, "/api/v1/packages", nil, toBody(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id pkg.Identity) error {
	q := url.Values{
		"pkg_name":    {id.Name},
		"pkg_type":    {id.Type.String()},
		"pkg_version": {id.Version},
	}
	return c.http.doJSON(ctx, http.MethodDelete, "/api/v1/packages", q, nil, nil)
}

func (c *Client) List(ctx context.Context, name string, typ pkg.PkgType) ([]pkg.Package, error) {
	q := url.Values{"pkg_name": {name}, "pkg_type": {typ.String()}}
	var out []pkg.Package
	if err := c.http.doJSON(ctx, http.MethodGet, "/api/v1/packages", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LatestBox(ctx context.Context, name string, typ pkg.PkgType) (*pkg.Package, error) {
	q := url.Values{"box_pkg_name": {name}, "box_pkg_type": {typ.String()}}
	var out pkg.Package
	if err := c.http.doJSON(ctx, http.MethodGet, "/api/v1/packages/box/latest", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckApp(ctx context.Context, q pkg.CheckQuery) (pkg.CheckResult, error) {
	var out pkg.CheckResult
	err := c.http.doJSON(ctx, http.MethodGet, "/api/v1/packages/check/app", checkValues(q), nil, &out)
	return out, err
}

func (c *Client) CheckBox(ctx context.Context, q pkg.CheckQuery) (pkg.CheckResult, error) {
	var out pkg.CheckResult
	err := c.http.doJSON(ctx, http.MethodGet, "/api/v1/packages/check/box", checkValues(q), nil, &out)
	return out, err
}

func (c *Client) CheckCompatibility(ctx context.Context, q pkg.CheckQuery) (pkg.CompatibilityResult, error) {
	var out pkg.CompatibilityResult
	err := c.http.doJSON(ctx, http.MethodGet, "/api/v1/packages/compatibility", checkValues(q), nil, &out)
	return out, err
}

func (c *Client) RegistryClients(ctx context.Context, boxUUID string) ([]registry.Client, error) {
	var out []registry.Client
	path := "/api/v1/registry/" + url.PathEscape(boxUUID) + "/clients"
	if err := c.http.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ImportBoxes отправляет xlsx книгу как есть.
func (c *Client) ImportBoxes(ctx context.Context, workbook io.Reader) (*inventory.ImportResult, error) {
	resp, err := c.http.do(ctx, http.MethodPost, "/api/v1/boxes/import", nil, xlsxContentType, workbook)
	if err != nil {
		return nil, err
	}

	var out inventory.ImportResult
	if err := c.http.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func toBody(p pkg.Package) packageBody {
	return packageBody{
		Name:              p.Name,
		Type:              p.Type,
		Version:           p.Version,
		Size:              p.Size,
		DownloadURL:       p.DownloadURL,
		UpdateDesc:        p.UpdateDesc,
		MD5:               p.MD5,
		IsForceUpdate:     p.IsForceUpdate,
		MinAndroidVersion: p.MinAndroidVersion,
		MinIOSVersion:     p.MinIOSVersion,
		MinBoxVersion:     p.MinBoxVersion,
	}
}

func checkValues(q pkg.CheckQuery) url.Values {
	return url.Values{
		"app_pkg_name":    {q.AppName},
		"app_pkg_type":    {q.AppType.String()},
		"cur_app_version": {q.AppVersion},
		"box_pkg_name":    {q.BoxName},
		"box_pkg_type":    {q.BoxType.String()},
		"cur_box_version": {q.BoxVersion},
	}
}
