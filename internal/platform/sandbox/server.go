// Package sandbox is a self-contained fixture backend implementing the REST
// surface the client consumes. It lets the CLI run end to end with no real
// deployment and backs the integration tests.
package sandbox

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/healthtrack/healthtrack/internal/domain/documents"
	"github.com/healthtrack/healthtrack/internal/domain/medication"
	"github.com/healthtrack/healthtrack/internal/domain/notification"
	"github.com/healthtrack/healthtrack/internal/domain/profile"
	"github.com/healthtrack/healthtrack/internal/domain/reading"
	"github.com/healthtrack/healthtrack/internal/domain/symptom"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

const tokenTTL = 24 * time.Hour

// Server is the sandbox backend.
type Server struct {
	echo   *echo.Echo
	store  *store
	secret []byte
	log    zerolog.Logger
}

// New builds a seeded sandbox server. secret signs the HS256 access tokens
// it mints; any non-empty value works for a fixture.
func New(secret string, log zerolog.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		store:  newStore(),
		secret: []byte(secret),
		log:    log,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.store.seed()
	s.routes()
	return s
}

// Handler exposes the underlying handler for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("sandbox backend listening")
	return s.echo.Start(addr)
}

func (s *Server) routes() {
	s.echo.POST("/auth/login", s.login)

	api := s.echo.Group("", s.requireBearer)

	api.GET("/api/documents", s.listDocuments)
	api.POST("/api/documents", s.createDocument)
	api.GET("/api/documents/search", s.searchDocuments)
	api.POST("/api/documents/upload", s.uploadDocument)
	api.GET("/api/documents/:id", s.getDocument)
	api.PATCH("/api/documents/:id/metadata", s.updateDocumentMetadata)
	api.DELETE("/api/documents/:id", s.deleteDocument)

	api.GET("/api/medications", s.listMedications)
	api.POST("/api/medications", s.createMedication)
	api.GET("/api/medications/:id", s.getMedication)
	api.PUT("/api/medications/:id", s.updateMedication)
	api.DELETE("/api/medications/:id", s.deleteMedication)

	api.GET("/symptoms", s.listSymptoms)
	api.POST("/symptoms", s.createSymptom)
	api.GET("/symptoms/stats/overview", s.symptomStats)
	api.GET("/symptoms/recent/:days", s.recentSymptoms)
	api.POST("/symptoms/bulk", s.bulkCreateSymptoms)
	api.GET("/symptoms/:id", s.getSymptom)
	api.PUT("/symptoms/:id", s.updateSymptom)
	api.DELETE("/symptoms/:id", s.deleteSymptom)

	api.GET("/api/health_readings", s.listReadings)
	api.POST("/api/health_readings", s.createReading)

	api.POST("/api/query", s.query)

	api.GET("/api/users/me", s.me)
	api.PATCH("/api/users/me/profile", s.updateProfile)

	api.GET("/api/notifications", s.listNotifications)
	api.POST("/api/notifications", s.createNotification)
	api.GET("/api/notifications/stats", s.notificationStats)
	api.POST("/api/notifications/mark-read", s.markRead)
	api.POST("/api/notifications/mark-all-read", s.markAllRead)
	api.DELETE("/api/notifications/:id", s.deleteNotification)
}

// -- Auth --

func (s *Server) login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Username == "" {
		body.Username = "demo"
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": body.Username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "sign token")
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": signed})
}

func (s *Server) requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return next(c)
	}
}

func pageParams(c echo.Context) pagination.Params {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return pagination.Params{Limit: limit, Offset: offset}.Normalize()
}

func pageOf[T any](c echo.Context, items []T, total int, pg pagination.Params) error {
	return c.JSON(http.StatusOK, pagination.Page[T]{
		Data:    items,
		Total:   total,
		Limit:   pg.Limit,
		Offset:  pg.Offset,
		HasMore: pg.HasNext(total),
	})
}

// -- Documents --

func (s *Server) listDocuments(c echo.Context) error {
	pg := pageParams(c)
	typeFilter := c.QueryParam("type")
	statusFilter := c.QueryParam("status")

	s.store.mu.Lock()
	var all []documents.Document
	for _, d := range s.store.documents {
		if typeFilter != "" && d.Type != typeFilter {
			continue
		}
		if statusFilter != "" && d.Status != statusFilter {
			continue
		}
		all = append(all, d)
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b documents.Document) bool { return a.Date.After(b.Date) }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) searchDocuments(c echo.Context) error {
	pg := pageParams(c)
	q := strings.ToLower(c.QueryParam("q"))

	s.store.mu.Lock()
	var all []documents.Document
	for _, d := range s.store.documents {
		if q == "" || strings.Contains(strings.ToLower(d.Filename), q) ||
			(d.Summary != nil && strings.Contains(strings.ToLower(*d.Summary), q)) {
			all = append(all, d)
		}
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b documents.Document) bool { return a.Date.After(b.Date) }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) createDocument(c echo.Context) error {
	var d documents.Document
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if d.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "filename is required")
	}
	d.ID = uuid.New()
	if d.Status == "" {
		d.Status = documents.StatusProcessed
	}
	if d.Date.IsZero() {
		d.Date = time.Now().UTC()
	}
	s.store.mu.Lock()
	s.store.documents[d.ID] = d
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, d)
}

func (s *Server) uploadDocument(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file part is required")
	}
	d := documents.Document{
		ID:       uuid.New(),
		Filename: file.Filename,
		Type:     c.FormValue("type"),
		Status:   documents.StatusPending,
		Date:     time.Now().UTC(),
		Source:   "upload",
	}
	if d.Type == "" {
		d.Type = documents.TypeOther
	}
	s.store.mu.Lock()
	s.store.documents[d.ID] = d
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, d)
}

func (s *Server) getDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	d, ok := s.store.documents[id]
	s.store.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) updateDocumentMetadata(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var meta documents.Metadata
	if err := c.Bind(&meta); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	d, ok := s.store.documents[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	if meta.Filename != nil {
		d.Filename = *meta.Filename
	}
	if meta.Type != nil {
		d.Type = *meta.Type
	}
	if meta.Date != nil {
		d.Date = *meta.Date
	}
	if meta.Source != nil {
		d.Source = *meta.Source
	}
	s.store.documents[id] = d
	return c.JSON(http.StatusOK, d)
}

func (s *Server) deleteDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	delete(s.store.documents, id)
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

// -- Medications --

func (s *Server) listMedications(c echo.Context) error {
	pg := pageParams(c)
	statusFilter := c.QueryParam("status")

	s.store.mu.Lock()
	var all []medication.Medication
	for _, m := range s.store.medications {
		if statusFilter != "" && m.Status != statusFilter {
			continue
		}
		all = append(all, m)
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b medication.Medication) bool { return a.Name < b.Name }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) createMedication(c echo.Context) error {
	var m medication.Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	m.ID = uuid.New()
	if m.Status == "" {
		m.Status = medication.StatusActive
	}
	if m.StartDate.IsZero() {
		m.StartDate = time.Now().UTC()
	}
	s.store.mu.Lock()
	s.store.medications[m.ID] = m
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) getMedication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	m, ok := s.store.medications[id]
	s.store.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) updateMedication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var m medication.Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.medications[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	m.ID = id
	s.store.medications[id] = m
	return c.JSON(http.StatusOK, m)
}

func (s *Server) deleteMedication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	delete(s.store.medications, id)
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

// -- Symptoms --

func (s *Server) listSymptoms(c echo.Context) error {
	pg := pageParams(c)
	severityFilter := c.QueryParam("severity")

	s.store.mu.Lock()
	var all []symptom.Symptom
	for _, sym := range s.store.symptoms {
		if severityFilter != "" && sym.Severity != severityFilter {
			continue
		}
		all = append(all, sym)
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b symptom.Symptom) bool { return a.Date.After(b.Date) }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) createSymptom(c echo.Context) error {
	var sym symptom.Symptom
	if err := c.Bind(&sym); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if sym.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	sym.ID = uuid.New()
	if sym.Severity == "" {
		sym.Severity = symptom.SeverityMild
	}
	if sym.Date.IsZero() {
		sym.Date = time.Now().UTC()
	}
	s.store.mu.Lock()
	s.store.symptoms[sym.ID] = sym
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, sym)
}

func (s *Server) bulkCreateSymptoms(c echo.Context) error {
	var in []symptom.Symptom
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(in) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty symptom list")
	}
	s.store.mu.Lock()
	for i := range in {
		in[i].ID = uuid.New()
		if in[i].Severity == "" {
			in[i].Severity = symptom.SeverityMild
		}
		if in[i].Date.IsZero() {
			in[i].Date = time.Now().UTC()
		}
		s.store.symptoms[in[i].ID] = in[i]
	}
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, in)
}

func (s *Server) getSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	sym, ok := s.store.symptoms[id]
	s.store.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "symptom not found")
	}
	return c.JSON(http.StatusOK, sym)
}

func (s *Server) updateSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sym symptom.Symptom
	if err := c.Bind(&sym); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.symptoms[id]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "symptom not found")
	}
	sym.ID = id
	s.store.symptoms[id] = sym
	return c.JSON(http.StatusOK, sym)
}

func (s *Server) deleteSymptom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	delete(s.store.symptoms, id)
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) symptomStats(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stats := symptom.Stats{BySeverity: map[string]int{}}
	counts := map[string]int{}
	for _, sym := range s.store.symptoms {
		stats.Total++
		stats.BySeverity[sym.Severity]++
		counts[sym.Description]++
	}
	type pair struct {
		name string
		n    int
	}
	var pairs []pair
	for name, n := range counts {
		pairs = append(pairs, pair{name, n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].n != pairs[j].n {
			return pairs[i].n > pairs[j].n
		}
		return pairs[i].name < pairs[j].name
	})
	for i, p := range pairs {
		if i == 3 {
			break
		}
		stats.MostCommon = append(stats.MostCommon, p.name)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) recentSymptoms(c echo.Context) error {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid days")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	s.store.mu.Lock()
	var recent []symptom.Symptom
	for _, sym := range s.store.symptoms {
		if sym.Date.After(cutoff) {
			recent = append(recent, sym)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	return c.JSON(http.StatusOK, recent)
}

// -- Readings --

func (s *Server) listReadings(c echo.Context) error {
	pg := pageParams(c)
	typeFilter := c.QueryParam("type")

	s.store.mu.Lock()
	var all []reading.Reading
	for _, r := range s.store.readings {
		if typeFilter != "" && r.Type != typeFilter {
			continue
		}
		all = append(all, r)
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b reading.Reading) bool { return a.Date.After(b.Date) }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) createReading(c echo.Context) error {
	var r reading.Reading
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !reading.ValidType(r.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reading type")
	}
	r.ID = uuid.New()
	if r.Unit == "" {
		r.Unit = reading.DefaultUnit(r.Type)
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	s.store.mu.Lock()
	s.store.readings[r.ID] = r
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, r)
}

// -- Assistant --

// query answers from the seeded records with a canned summarizer; the real
// backend delegates to a language model.
func (s *Server) query(c echo.Context) error {
	var q struct {
		Query string `json:"query"`
	}
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(q.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	s.store.mu.Lock()
	meds, symptoms := len(s.store.medications), len(s.store.symptoms)
	s.store.mu.Unlock()

	answer := fmt.Sprintf(
		"You are tracking %d medications and have logged %d symptoms. Ask about a specific record for more detail.",
		meds, symptoms)
	return c.JSON(http.StatusOK, map[string]any{"answer": answer})
}

// -- Profile --

func (s *Server) me(c echo.Context) error {
	s.store.mu.Lock()
	u := s.store.user
	s.store.mu.Unlock()
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateProfile(c echo.Context) error {
	var patch profile.ProfilePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if patch.Name != nil {
		s.store.user.Name = *patch.Name
	}
	if patch.DOB != nil {
		s.store.user.DOB = patch.DOB
	}
	if patch.WeightKG != nil {
		s.store.user.WeightKG = patch.WeightKG
	}
	if patch.HeightCM != nil {
		s.store.user.HeightCM = patch.HeightCM
	}
	if patch.Gender != nil {
		s.store.user.Gender = patch.Gender
	}
	return c.JSON(http.StatusOK, s.store.user)
}

// -- Notifications --

func (s *Server) listNotifications(c echo.Context) error {
	pg := pageParams(c)
	unreadOnly := c.QueryParam("unread") == "true"

	s.store.mu.Lock()
	var all []notification.Notification
	for _, n := range s.store.notifications {
		if unreadOnly && n.Read {
			continue
		}
		all = append(all, n)
	}
	s.store.mu.Unlock()

	items, total := paginate(all, func(a, b notification.Notification) bool { return a.CreatedAt.After(b.CreatedAt) }, pg.Limit, pg.Offset)
	return pageOf(c, items, total, pg)
}

func (s *Server) createNotification(c echo.Context) error {
	var n notification.Notification
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if n.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	n.ID = uuid.New()
	if n.Severity == "" {
		n.Severity = notification.SeverityInfo
	}
	n.CreatedAt = time.Now().UTC()
	s.store.mu.Lock()
	s.store.notifications[n.ID] = n
	s.store.mu.Unlock()
	return c.JSON(http.StatusCreated, n)
}

func (s *Server) notificationStats(c echo.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stats := notification.Stats{BySeverity: map[string]int{}}
	for _, n := range s.store.notifications {
		stats.Total++
		if !n.Read {
			stats.Unread++
		}
		stats.BySeverity[n.Severity]++
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) markRead(c echo.Context) error {
	var body struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.store.mu.Lock()
	for _, id := range body.IDs {
		if n, ok := s.store.notifications[id]; ok {
			n.Read = true
			s.store.notifications[id] = n
		}
	}
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) markAllRead(c echo.Context) error {
	s.store.mu.Lock()
	for id, n := range s.store.notifications {
		n.Read = true
		s.store.notifications[id] = n
	}
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteNotification(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	s.store.mu.Lock()
	delete(s.store.notifications, id)
	s.store.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}
