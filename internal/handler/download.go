package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"digitalstore/internal/dto"
	"digitalstore/internal/service"
)

type DownloadHandler struct {
	downloadService service.DownloadService
}

func NewDownloadHandler(downloadService service.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
	}
}

// DownloadFile streams a purchased asset. Success is raw binary with an
// attachment disposition; every failure is a JSON error body.
func (h *DownloadHandler) DownloadFile(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.DownloadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "orderId, itemId and token are required")
	}

	dl, err := h.downloadService.Fetch(ctx, req.Token, req.OrderID, req.ItemID, req.BundleName)
	if err != nil {
		return respondError(c, err)
	}
	defer dl.Object.Body.Close()

	res := c.Response()
	// FormatMediaType quotes and escapes the filename, so names with
	// quotes or non-ASCII stay well-formed.
	res.Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": dl.DisplayName + ".zip"}))
	// Let browser clients read the computed filename cross-origin.
	res.Header().Set(echo.HeaderAccessControlExposeHeaders, echo.HeaderContentDisposition)
	if dl.Object.ContentLength >= 0 {
		res.Header().Set(echo.HeaderContentLength, strconv.FormatInt(dl.Object.ContentLength, 10))
	}

	return c.Stream(http.StatusOK, "application/zip", dl.Object.Body)
}
