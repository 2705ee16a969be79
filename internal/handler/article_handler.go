package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/service"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/response"
)

// ArticleHandler exposes the public news feed and the admin article CRUD.
type ArticleHandler struct {
	articles *service.ArticleService
}

// NewArticleHandler constructs ArticleHandler.
func NewArticleHandler(articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// PublicList godoc
// @Summary Published articles
// @Tags Articles
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param kategori query string false "Category slug"
// @Param search query string false "Search"
// @Param featured query int false "Featured flag"
// @Success 200 {object} response.Envelope
// @Router /public/articles [get]
func (h *ArticleHandler) PublicList(c *gin.Context) {
	filter := articleFilterFrom(c)
	articles, pagination, err := h.articles.PublicList(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "daftar artikel", articles, pagination)
}

// PublicDetail godoc
// @Summary Published article detail
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} response.Envelope
// @Router /public/articles/{slug} [get]
func (h *ArticleHandler) PublicDetail(c *gin.Context) {
	article, err := h.articles.PublicDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "detail artikel", article)
}

// PublicCategories lists categories with article counts for the public site.
func (h *ArticleHandler) PublicCategories(c *gin.Context) {
	categories, err := h.articles.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daftar kategori", categories)
}

// AdminList returns articles for the management screen, drafts included.
func (h *ArticleHandler) AdminList(c *gin.Context) {
	filter := articleFilterFrom(c)
	if published := c.Query("is_published"); published != "" {
		if v, err := strconv.Atoi(published); err == nil {
			filter.IsPublished = &v
		}
	}
	articles, pagination, err := h.articles.AdminList(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "daftar artikel", articles, pagination)
}

// AdminDetail returns one article for the editor.
func (h *ArticleHandler) AdminDetail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.articles.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "detail artikel", article)
}

// Create godoc
// @Summary Create article
// @Tags Articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Router /admin/articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	input := articleInputFrom(c)
	image, err := h.saveFeaturedImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.articles.Create(c.Request.Context(), input, image, actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "artikel berhasil dibuat", article)
}

// Update saves changes to an existing article.
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	input := articleInputFrom(c)
	image, err := h.saveFeaturedImage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	article, err := h.articles.Update(c.Request.Context(), id, input, image, actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "artikel berhasil diperbarui", article)
}

// Delete removes an article.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.articles.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "artikel berhasil dihapus", nil)
}

// Publish flips the publication flag.
func (h *ArticleHandler) Publish(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var toggle models.PublishToggle
	if err := c.ShouldBindJSON(&toggle); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload tidak valid"))
		return
	}
	if err := h.articles.SetPublished(c.Request.Context(), id, toggle, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "status publikasi diperbarui", nil)
}

// Feature flips the featured flag.
func (h *ArticleHandler) Feature(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var toggle models.FeatureToggle
	if err := c.ShouldBindJSON(&toggle); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload tidak valid"))
		return
	}
	if err := h.articles.SetFeatured(c.Request.Context(), id, toggle, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "status unggulan diperbarui", nil)
}

// Categories lists all categories for the admin screen.
func (h *ArticleHandler) Categories(c *gin.Context) {
	categories, err := h.articles.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daftar kategori", categories)
}

// CreateCategory adds a new category.
func (h *ArticleHandler) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload kategori tidak valid"))
		return
	}
	category, err := h.articles.CreateCategory(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "kategori berhasil dibuat", category)
}

func (h *ArticleHandler) saveFeaturedImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("gambar_utama")
	if err != nil {
		return "", nil
	}
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "gagal membaca berkas gambar")
	}
	contentType := header.Header.Get("Content-Type")
	return h.articles.UploadImage(c.Request.Context(), header.Filename, contentType, data)
}

func articleFilterFrom(c *gin.Context) models.ArticleFilter {
	var filter models.ArticleFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.CategorySlug = c.Query("kategori")
	if featured := c.Query("featured"); featured != "" {
		if v, err := strconv.Atoi(featured); err == nil {
			filter.IsFeatured = &v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		filter.Limit = limit
	}
	return filter
}

func articleInputFrom(c *gin.Context) models.ArticleInput {
	published, _ := strconv.Atoi(c.DefaultPostForm("is_published", "0"))
	featured, _ := strconv.Atoi(c.DefaultPostForm("is_featured", "0"))
	categoryID, _ := strconv.ParseInt(c.PostForm("kategori_id"), 10, 64)
	return models.ArticleInput{
		Title:           c.PostForm("judul"),
		Slug:            c.PostForm("slug"),
		Excerpt:         c.PostForm("konten_singkat"),
		Content:         c.PostForm("konten_lengkap"),
		CategoryID:      categoryID,
		Author:          c.PostForm("penulis"),
		IsPublished:     published,
		IsFeatured:      featured,
		PublishDate:     c.PostForm("tanggal_publish"),
		MetaDescription: c.PostForm("meta_description"),
		Tags:            c.PostForm("tags"),
	}
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "parameter id tidak valid")
	}
	return id, nil
}
