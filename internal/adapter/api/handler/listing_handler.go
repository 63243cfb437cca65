package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/middleware"
	"bookswap/internal/domain/entity"
	"bookswap/internal/usecase"
	"bookswap/pkg/errors"
	"bookswap/pkg/response"
)

const imagesField = "images"

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	maxUploadBytes int64
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, maxUploadBytes int64) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// updateListingRequest lists the fields a client may change. Fields left out
// of the JSON body stay nil and are not written.
type updateListingRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Genre       *string  `json:"genre"`
	Condition   *string  `json:"condition"`
	Description *string  `json:"description"`
	ContactApp  *string  `json:"contactApp"`
	ContactID   *string  `json:"contactId"`
	IsPublic    *bool    `json:"isPublic"`
	Images      []string `json:"images"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	if h.maxUploadBytes > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxUploadBytes)
	}

	images, err := h.formImages(c)
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.ListingInput{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Genre:       c.FormValue("genre"),
		Condition:   c.FormValue("condition"),
		Description: c.FormValue("description"),
		ContactApp:  c.FormValue("contactApp"),
		ContactID:   c.FormValue("contactId"),
		IsPublic:    formBool(c, "isPublic") || formBool(c, "public"),
	}

	if _, err := h.listingUseCase.AddListing(c.Request().Context(), middleware.IdentityFrom(c), input, images); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "Book added successfully")
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListPublicFeed(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListOwnListings(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	patch := entity.ListingPatch{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Condition:   req.Condition,
		Description: req.Description,
		ContactApp:  req.ContactApp,
		ContactID:   req.ContactID,
		IsPublic:    req.IsPublic,
	}

	images := make([]entity.ImageSource, len(req.Images))
	for i, img := range req.Images {
		images[i] = entity.ImageSource{DataURI: img}
	}

	if _, err := h.listingUseCase.UpdateListing(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), patch, images); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	if _, err := h.listingUseCase.DeleteListing(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.OK(c)
}

// formImages reads every file posted under "images". Requests that are not
// multipart carry no images.
func (h *ListingHandler) formImages(c echo.Context) ([]entity.ImageSource, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Internal("Failed to process book data", err)
	}

	files := form.File[imagesField]
	images := make([]entity.ImageSource, 0, len(files))
	for _, fh := range files {
		if fh.Size == 0 {
			continue
		}
		data, err := readFile(fh)
		if err != nil {
			return nil, errors.Internal("Failed to process book data", err)
		}
		images = append(images, entity.ImageSource{Data: data, Name: fh.Filename})
	}

	return images, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func formBool(c echo.Context, name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.FormValue(name)), "true")
}
