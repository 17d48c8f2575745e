package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/agrovida/agroops-api/internal/application/ports"
	"github.com/agrovida/agroops-api/internal/domain/forms"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	extractSystemPrompt = `Eres un agrónomo experto en control de calidad de cultivos.
El usuario pega el texto libre de un checklist de inspección. Conviértelo en un esquema estructurado.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código) con esta estructura exacta:
{
  "name": "<nombre corto de la plantilla>",
  "confidence": <número decimal entre 0.0 y 1.0>,
  "schema": {
    "sections": [
      {
        "title": "<título de la sección>",
        "fields": [
          {
            "key": "<clave snake_case única>",
            "type": "<text|number|select|checkbox|date|photo|gps>",
            "label": "<etiqueta visible>",
            "required": <true|false>,
            "options": ["..."],
            "validation": {"min": 0, "max": 0, "threshold_min": 0, "threshold_max": 0},
            "critical": <true|false>
          }
        ]
      }
    ]
  }
}

Reglas:
- Las claves de campo deben ser únicas en toda la plantilla.
- options solo aplica a type select; validation y critical son opcionales.
- Marca critical: true solo en campos cuyo incumplimiento invalida la inspección.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`

	pestSystemPrompt = `Eres un agrónomo experto en fitosanidad. Analiza la foto de cultivo en busca de plagas o enfermedades.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{
  "pest_detected": <true|false>,
  "pest_name": "<nombre común en español, vacío si no hay plaga>",
  "summary": "<descripción concisa de lo observado, máximo 200 caracteres>",
  "confidence": <número decimal entre 0.0 y 1.0>
}
No incluyas texto fuera del JSON.`

	annotateSystemPrompt = `Eres un agrónomo que revisa inspecciones de calidad de cultivos.
Recibes el esquema del formulario y las respuestas registradas. Señala observaciones útiles por campo.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{
  "annotations": [
    {
      "field_key": "<clave del campo>",
      "kind": "<observation|warning>",
      "summary": "<observación concisa en español, máximo 200 caracteres>",
      "confidence": <número decimal entre 0.0 y 1.0>
    }
  ]
}
Incluye solo campos donde tengas algo relevante que decir; un arreglo vacío es válido.
No incluyas texto fuera del JSON.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; los use cases imponen además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

// anthropicContent bloque de contenido: texto o imagen base64 (visión).
type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"` // base64
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractTemplate convierte un checklist en texto libre en un esquema de plantilla.
func (s *AnthropicService) ExtractTemplate(ctx context.Context, text string) (*ports.ExtractedTemplate, error) {
	raw, err := s.complete(ctx, extractSystemPrompt, []anthropicContent{
		{Type: "text", Text: "Checklist:\n\n" + text},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Name       string       `json:"name"`
		Confidence float64      `json:"confidence"`
		Schema     forms.Schema `json:"schema"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de plantilla: %w (JSON extraído: %s)", err, raw)
	}
	return &ports.ExtractedTemplate{
		Name:       payload.Name,
		Schema:     payload.Schema,
		Confidence: clampConfidence(payload.Confidence),
	}, nil
}

// DetectPests analiza una foto de cultivo (base64) en busca de plagas o enfermedades.
func (s *AnthropicService) DetectPests(ctx context.Context, imageBase64, mediaType string) (*ports.PestDetection, error) {
	raw, err := s.complete(ctx, pestSystemPrompt, []anthropicContent{
		{Type: "image", Source: &anthropicSource{Type: "base64", MediaType: mediaType, Data: imageBase64}},
		{Type: "text", Text: "Analiza la foto."},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		PestDetected bool    `json:"pest_detected"`
		PestName     string  `json:"pest_name"`
		Summary      string  `json:"summary"`
		Confidence   float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de detección: %w (JSON extraído: %s)", err, raw)
	}
	return &ports.PestDetection{
		PestDetected: payload.PestDetected,
		PestName:     payload.PestName,
		Summary:      payload.Summary,
		Confidence:   clampConfidence(payload.Confidence),
	}, nil
}

// AnnotateAnswers revisa las respuestas de una inspección enviada y devuelve
// observaciones por campo.
func (s *AnthropicService) AnnotateAnswers(ctx context.Context, schema forms.Schema, answers forms.Answers) ([]ports.FieldAnnotation, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar esquema: %w", err)
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar respuestas: %w", err)
	}

	raw, err := s.complete(ctx, annotateSystemPrompt, []anthropicContent{
		{Type: "text", Text: fmt.Sprintf("Esquema:\n%s\n\nRespuestas:\n%s", schemaJSON, answersJSON)},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Annotations []struct {
			FieldKey   string  `json:"field_key"`
			Kind       string  `json:"kind"`
			Summary    string  `json:"summary"`
			Confidence float64 `json:"confidence"`
		} `json:"annotations"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de anotaciones: %w (JSON extraído: %s)", err, raw)
	}

	out := make([]ports.FieldAnnotation, 0, len(payload.Annotations))
	for _, a := range payload.Annotations {
		out = append(out, ports.FieldAnnotation{
			FieldKey:   a.FieldKey,
			Kind:       a.Kind,
			Summary:    a.Summary,
			Confidence: clampConfidence(a.Confidence),
		})
	}
	return out, nil
}

// complete envía una conversación de un turno y devuelve el bloque JSON de la respuesta.
func (s *AnthropicService) complete(ctx context.Context, system string, content []anthropicContent) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 2048,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: content},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	// Parseo seguro: extraer solo el bloque JSON aunque el modelo añada texto adicional.
	clean := extractJSON(anthResp.Content[0].Text)
	if clean == "" {
		return "", fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", anthResp.Content[0].Text)
	}
	return clean, nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
