package api

import (
	"database/sql"
	"html/template"
	"time"

	"github.com/vytor/userdirectory/internal/services"
)

type Server struct {
	DirectoryService services.DirectoryService
	DB               *sql.DB
	Templates        *template.Template
	// RequestTimeout caps each request, including the upstream fetch behind
	// GET /. Zero means no cap.
	RequestTimeout time.Duration
}
