package submission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"uvaexpress/internal/logger"
	"uvaexpress/internal/uva"
	"uvaexpress/pkg/models"
)

// Gate drives the submission workflow:
// Entwurf → Berechnet → Validiert → Freigegeben → Eingereicht → Bestätigt.
// Prepare evaluates the readiness checklist, Confirm records the manual
// FinanzOnline submission idempotently.
type Gate struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewGate creates a submission gate on top of an idempotency store.
func NewGate(store Store) *Gate {
	return &Gate{
		store: store,
		log:   logger.WithComponent("submission-gate"),
		now:   time.Now,
	}
}

func periodKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// Prepare evaluates all submission prerequisites in a fixed order and
// returns the checklist. Error-severity items block; the state pair is
// Berechnet/Validiert while anything blocks and Validiert/Freigegeben
// once the checklist is clean.
func (g *Gate) Prepare(req models.PrepareRequest) models.PrepareResponse {
	kz := &req.KZValues
	var checklist []models.ChecklistItem
	blocking := 0

	// 1. Steuernummer present.
	hasStnr := len(req.Steuernummer) >= 5
	stnrDetails := "Bitte Steuernummer eingeben"
	if hasStnr {
		stnrDetails = "Steuernummer: " + req.Steuernummer
	}
	checklist = append(checklist, models.ChecklistItem{
		Label:    "Steuernummer vorhanden",
		Passed:   hasStnr,
		Severity: models.SeverityError,
		Details:  stnrDetails,
	})
	if !hasStnr {
		blocking++
	}

	// 2. UVA berechnet. A genuine Leermeldung passes too; the item exists
	// so the reviewer sees the KZ095 amount (or "Leermeldung") in the list.
	hasData := !kz.AllZero()
	dataDetails := "Leermeldung"
	if hasData || !kz.KZ095Betrag.IsZero() {
		dataDetails = fmt.Sprintf("KZ 095: %s EUR", kz.KZ095Betrag.StringFixed(2))
	}
	checklist = append(checklist, models.ChecklistItem{
		Label:    "UVA berechnet",
		Passed:   true,
		Severity: models.SeverityError,
		Details:  dataDetails,
	})

	// 3. Plausibility validation.
	validation := uva.Validate(models.ValidateRequest{
		KZValues:               req.KZValues,
		Year:                   req.Year,
		Month:                  req.Month,
		Invoices:               req.Invoices,
		SonstigeBerichtigungen: req.SonstigeBerichtigungen,
	})
	checklist = append(checklist, models.ChecklistItem{
		Label:    "BMF-Plausibilitätsprüfung bestanden",
		Passed:   validation.Valid,
		Severity: models.SeverityError,
		Details:  fmt.Sprintf("%d Fehler, %d Warnungen", len(validation.Errors), len(validation.Warnings)),
	})
	if !validation.Valid {
		blocking++
	}

	// 4. KZ095 consistency.
	checklist = append(checklist, models.ChecklistItem{
		Label:    "KZ 095 Berechnung konsistent",
		Passed:   validation.KZ095Matches,
		Severity: models.SeverityError,
		Details: fmt.Sprintf("KZ 095 = %s, Neuberechnung = %s",
			kz.KZ095Betrag.StringFixed(2), validation.KZ095Recalculated.StringFixed(2)),
	})
	if !validation.KZ095Matches {
		blocking++
	}

	// 5. Document renderable and structurally valid.
	stnr := req.Steuernummer
	if stnr == "" {
		stnr = "000/0000"
	}
	xmlResult := uva.BuildXML(models.XMLExportRequest{
		KZValues:     req.KZValues,
		Steuernummer: stnr,
		Year:         req.Year,
		Month:        req.Month,
	})
	renderOK := xmlResult.Success
	renderDetails := "XML-Generierung fehlgeschlagen"
	if renderOK {
		if schemaIssues := uva.ValidateSchema(xmlResult.XMLContent); models.HasErrors(schemaIssues) {
			renderOK = false
			renderDetails = fmt.Sprintf("Schema-Prüfung fehlgeschlagen: %s", schemaIssues[0].Message)
		} else {
			renderDetails = "Datei: " + xmlResult.Filename
		}
	}
	checklist = append(checklist, models.ChecklistItem{
		Label:    "XML-Export generierbar",
		Passed:   renderOK,
		Severity: models.SeverityError,
		Details:  renderDetails,
	})
	if !renderOK {
		blocking++
	}

	// 6. Period closed.
	now := g.now().UTC()
	isPast := req.Year < now.Year() || (req.Year == now.Year() && req.Month <= int(now.Month()))
	checklist = append(checklist, models.ChecklistItem{
		Label:    "Zeitraum ist abgeschlossen",
		Passed:   isPast,
		Severity: models.SeverityWarning,
		Details:  fmt.Sprintf("Periode: %02d/%d", req.Month, req.Year),
	})

	// 7. Invoices attached, unless Leermeldung.
	invCount := len(req.Invoices)
	invDetails := "Leermeldung (keine Rechnungen)"
	if invCount > 0 {
		invDetails = fmt.Sprintf("%d Rechnungen", invCount)
	}
	checklist = append(checklist, models.ChecklistItem{
		Label:    "Rechnungen zugeordnet",
		Passed:   invCount > 0 || !hasData,
		Severity: models.SeverityWarning,
		Details:  invDetails,
	})

	// 8. Period not already confirmed. Resubmission stays permitted, so
	// this warns rather than blocks.
	period := periodKey(req.Year, req.Month)
	alreadyConfirmed := g.store.HasPeriod(period)
	confirmDetails := "Noch keine Einreichung erfasst"
	if alreadyConfirmed {
		confirmDetails = fmt.Sprintf("Periode %s wurde bereits bestätigt", period)
	}
	checklist = append(checklist, models.ChecklistItem{
		Label:    "Zeitraum noch nicht eingereicht",
		Passed:   !alreadyConfirmed,
		Severity: models.SeverityWarning,
		Details:  confirmDetails,
	})

	currentStatus, nextStatus := models.StatusValidiert, models.StatusFreigegeben
	if blocking > 0 {
		currentStatus, nextStatus = models.StatusBerechnet, models.StatusValidiert
	}

	warningCount := 0
	for _, item := range checklist {
		if !item.Passed && item.Severity == models.SeverityWarning {
			warningCount++
		}
	}

	var preview string
	if xmlResult.Success {
		preview = xmlResult.XMLContent
	}

	prepareLog := logger.WithCorrelationID(g.log, req.CorrelationID)
	prepareLog.Info().
		Str("period", period).
		Int("blocking", blocking).
		Int("warnings", warningCount).
		Bool("ready", blocking == 0).
		Msg("submission prepared")

	return models.PrepareResponse{
		Ready:          blocking == 0,
		CurrentStatus:  currentStatus,
		NextStatus:     nextStatus,
		Checklist:      checklist,
		BlockingIssues: blocking,
		Warnings:       warningCount,
		XMLPreview:     preview,
		DueDate:        uva.DueDate(req.Year, req.Month),
	}
}

// Confirm records the manual submission of a period. Retries with the
// same idempotency key replay the first result verbatim and flag it as a
// duplicate; a missing key gets a generated one and therefore never
// deduplicates. Distinct keys for the same period all succeed.
func (g *Gate) Confirm(req models.ConfirmRequest) (models.ConfirmResponse, error) {
	const op = "submission.Confirm"

	if !uva.ValidPeriod(req.Year, req.Month) {
		return models.ConfirmResponse{}, fmt.Errorf("%s: invalid period %d-%02d", op, req.Year, req.Month)
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	period := periodKey(req.Year, req.Month)
	msg := fmt.Sprintf("UVA %02d/%d als eingereicht markiert.", req.Month, req.Year)
	if req.FinanzOnlineReference != "" {
		msg += " FinanzOnline-Referenz: " + req.FinanzOnlineReference
	}

	candidate := models.ConfirmResponse{
		Success:   true,
		NewStatus: models.StatusBestaetigt,
		Timestamp: g.now().UTC(),
		Message:   msg,
	}

	stored, inserted := g.store.PutIfAbsent(key, period, candidate)
	if !inserted {
		replay := stored
		replay.WasDuplicate = true
		g.log.Info().
			Str("period", period).
			Str("idempotency_key", key).
			Msg("submission confirmation replayed")
		return replay, nil
	}

	confirmLog := logger.WithCorrelationID(g.log, req.CorrelationID)
	confirmLog.Info().
		Str("period", period).
		Str("idempotency_key", key).
		Str("finanzonline_reference", req.FinanzOnlineReference).
		Msg("submission confirmed")

	return stored, nil
}
