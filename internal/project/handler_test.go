package project_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	projectDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/project"
	"github.com/frahmantamala/portfolio/internal/project"
	projectPostgres "github.com/frahmantamala/portfolio/internal/project/postgres"
	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Project Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&projectDatamodel.Project{})).To(Succeed())

		repo := projectPostgres.NewProjectRepository(db)
		handler := project.NewHandler(&transport.BaseHandler{Logger: slogger}, project.NewService(repo, slogger))

		router = chi.NewRouter()
		router.Get("/projects", handler.ListProjects)
		router.Get("/projects/{slug}", handler.GetProject)
		router.Post("/projects", handler.CreateProject)
		router.Patch("/projects/{slug}", handler.UpdateProject)
		router.Delete("/projects/{slug}", handler.DeleteProject)

		order := 1
		featured := validProject("Digital Artisans", "digital-artisans")
		featured.Featured = true
		featured.Order = &order
		featured.GalleryImages = []string{"/a.jpg", "/b.jpg"}
		for _, dto := range []project.CreateProjectDTO{featured, validProject("I-fineart", "i-fineart")} {
			body, _ := json.Marshal(dto)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body)))
			Expect(w.Code).To(Equal(http.StatusCreated))
		}
	})

	It("should list featured projects", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects?featured=true", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp project.ProjectsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Projects).To(HaveLen(1))
		Expect(resp.Projects[0].GalleryImages).To(Equal([]string{"/a.jpg", "/b.jpg"}))
	})

	It("should fetch by slug and 404 on unknown slugs", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/i-fineart", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/nope", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer a duplicate slug with 409", func() {
		body, _ := json.Marshal(validProject("Copy", "i-fineart"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/projects", bytes.NewReader(body)))
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should update and delete", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/i-fineart", nil))
		var p project.ProjectResponse
		Expect(json.NewDecoder(w.Body).Decode(&p)).To(Succeed())
		Expect(p.Featured).To(BeFalse())

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/projects/i-fineart", bytes.NewReader([]byte(`{"featured":true}`))))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(json.NewDecoder(w.Body).Decode(&p)).To(Succeed())
		Expect(p.Featured).To(BeTrue())

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/projects/i-fineart", nil))
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/i-fineart", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
