package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/service"
	"github.com/MKhiriev/repair-desk/internal/utils"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds import uploads at 16 MiB.
const maxUploadSize = 16 << 20

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	filter := models.FilterSpec{
		Status:      query.Get("status"),
		ParentFleet: query.Get("fleet"),
		Priority:    query.Get("priority"),
	}
	sortByPriority := query.Get("sort") == "priority"

	table, err := h.services.RecordService.List(ctx, filter, sortByPriority)
	if err != nil {
		log.Err(err).Msg("error listing records")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, table, http.StatusOK)
}

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var row models.Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if status := row["status"]; status != "" && !h.knownStatus(status) {
		log.Err(service.ErrUnknownStatus).Str("status", status).Send()
		http.Error(w, service.ErrUnknownStatus.Error(), http.StatusBadRequest)
		return
	}

	table, err := h.services.RecordService.Add(ctx, row)
	if err != nil {
		log.Err(err).Msg("error adding record")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := utils.GetIdentityFromContext(ctx)
	if err := h.services.AuditService.Record(ctx, actor, models.ActionAddRecord, row["id"]); err != nil {
		log.Err(err).Msg("error recording add_record action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, table, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if status, ok := fields["status"]; ok && !h.knownStatus(status) {
		log.Err(service.ErrUnknownStatus).Str("status", status).Send()
		http.Error(w, service.ErrUnknownStatus.Error(), http.StatusBadRequest)
		return
	}

	table, err := h.services.RecordService.Update(ctx, id, fields)
	if err != nil {
		log.Err(err).Msg("error updating record")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := utils.GetIdentityFromContext(ctx)
	if err := h.services.AuditService.Record(ctx, actor, models.ActionUpdate, id); err != nil {
		log.Err(err).Msg("error recording update_record action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, table, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")

	table, err := h.services.RecordService.Delete(ctx, id)
	if err != nil {
		log.Err(err).Msg("error deleting record")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := utils.GetIdentityFromContext(ctx)
	if err := h.services.AuditService.Record(ctx, actor, models.ActionDelete, id); err != nil {
		log.Err(err).Msg("error recording delete_record action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, table, http.StatusOK)
}

func (h *Handler) importRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Err(err).Msg("error parsing multipart form")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing upload file")
		http.Error(w, "missing upload file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Err(err).Msg("error reading upload")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	format := service.DetectFormat(header.Filename)
	table, err := h.services.RecordService.ImportReplace(ctx, data, format)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportParse):
			log.Err(err).Str("filename", header.Filename).Msg("import parse failure")
			http.Error(w, service.ErrImportParse.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during import")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	actor, _ := utils.GetIdentityFromContext(ctx)
	if err := h.services.AuditService.Record(ctx, actor, models.ActionImport, header.Filename); err != nil {
		log.Err(err).Msg("error recording import_records action")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, table, http.StatusOK)
}

func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	data, err := h.services.RecordService.Export(ctx)
	if err != nil {
		log.Err(err).Msg("error exporting records")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ExportFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	counts, err := h.services.RecordService.Summary(ctx)
	if err != nil {
		log.Err(err).Msg("error building summary")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, counts, http.StatusOK)
}
