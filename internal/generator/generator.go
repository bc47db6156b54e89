// Package generator drafts a month of assignments with a Gemini model. The
// output is only a draft: every assignment still goes through the rule chain
// before it is committed, so a hallucinated schedule degrades into a list of
// rejections instead of corrupt data.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/config"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/rules"
)

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Generator.Timeout) * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateMonthlySchedule asks the model for a draft schedule for one
// specialty and month. The returned assignments are unvalidated.
func (c *Client) GenerateMonthlySchedule(
	ctx context.Context,
	doctors []*domain.Doctor,
	shiftTypes []*domain.ShiftTypeDefinition,
	existing []*domain.Shift,
	year int,
	month time.Month,
	thresholds rules.Thresholds,
) ([]*domain.ProposedAssignment, error) {
	if c.cfg.Generator.APIKey == "" {
		return nil, fmt.Errorf("generator: no hay clave de API configurada")
	}

	prompt := buildPrompt(doctors, shiftTypes, existing, year, month, thresholds)

	var reqBody generateRequest
	reqBody.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	reqBody.Contents[0].Parts = make([]struct {
		Text string `json:"text"`
	}, 1)
	reqBody.Contents[0].Parts[0].Text = prompt
	reqBody.GenerationConfig.ResponseMimeType = "application/json"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.Generator.Endpoint, c.cfg.Generator.Model, c.cfg.Generator.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator: el servicio respondió %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, err
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generator: respuesta vacía del modelo")
	}

	var assignments []*domain.ProposedAssignment
	text := genResp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &assignments); err != nil {
		return nil, fmt.Errorf("generator: no se pudo interpretar la respuesta del modelo: %w", err)
	}

	return assignments, nil
}

func buildPrompt(
	doctors []*domain.Doctor,
	shiftTypes []*domain.ShiftTypeDefinition,
	existing []*domain.Shift,
	year int,
	month time.Month,
	thresholds rules.Thresholds,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Eres un planificador de turnos hospitalarios. Genera el cuadrante del mes %04d-%02d.\n\n", year, int(month))

	b.WriteString("Médicos disponibles (doctorId, nombre):\n")
	for _, d := range doctors {
		fmt.Fprintf(&b, "- %d: %s\n", d.ID, d.FullName)
	}

	b.WriteString("\nTipos de turno (shiftTypeId, nombre, horas, horario):\n")
	for _, st := range shiftTypes {
		if st.Timed() {
			fmt.Fprintf(&b, "- %s: %s, %g horas, %s-%s\n", st.ID, st.Name, st.DurationHours, st.StartTime, st.EndTime)
		} else {
			fmt.Fprintf(&b, "- %s: %s, sin horario\n", st.ID, st.Name)
		}
	}

	if len(existing) > 0 {
		b.WriteString("\nTurnos ya asignados que no debes duplicar ni contradecir:\n")
		for _, s := range existing {
			fmt.Fprintf(&b, "- doctorId %d, fecha %s, tipo %s\n", s.DoctorID, s.Date, s.ShiftTypeID)
		}
	}

	b.WriteString("\nRestricciones obligatorias:\n")
	fmt.Fprintf(&b, "- Ningún médico puede superar %g horas por semana (de domingo a sábado).\n", thresholds.MaxWeekly)
	fmt.Fprintf(&b, "- Ningún médico puede superar %g horas en el mes; lo ideal es entre %g y %g.\n", thresholds.MonthlyMax, thresholds.MonthlyMin, thresholds.MonthlyWarning)
	fmt.Fprintf(&b, "- Tras un turno %s o %s, el médico debe descansar el día siguiente completo.\n", domain.ShiftTypeNight, domain.ShiftTypeNightGuard)
	fmt.Fprintf(&b, "- El tipo %s no se combina con ningún otro turno el mismo día.\n", domain.ShiftTypeVacation)
	b.WriteString("- Dos turnos del mismo médico en el mismo día no pueden solaparse en horario.\n")

	b.WriteString("\nResponde únicamente con un arreglo JSON de objetos con los campos ")
	b.WriteString(`"doctorId" (número), "date" (cadena YYYY-MM-DD) y "shiftTypeId" (cadena). Sin texto adicional.`)

	return b.String()
}
