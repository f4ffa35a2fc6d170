// Package formstate manages a multi-step form document: sectioned updates,
// two-channel persistence with session-first restore, base64 attachment
// handling and an all-or-nothing validation gate before submission.
package formstate

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
)

// Section names of the form tree.
const (
	SectionBasics        = "basics"
	SectionRequirements  = "requirements"
	SectionPrizeTimeline = "prizeTimeline"
	SectionReview        = "review"
)

var sectionOrder = []string{SectionBasics, SectionRequirements, SectionPrizeTimeline, SectionReview}

// attachment is a binary blob carried inside the tree as base64 so the whole
// document stays serializable.
type attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

type document struct {
	Sections    map[string]map[string]any `json:"sections"`
	Attachments map[string]attachment     `json:"attachments,omitempty"`
}

// Validator is a per-step predicate. Submission proceeds only when every
// registered validator passes; no per-field detail is collected.
type Validator func(sections map[string]map[string]any) bool

// Manager holds the form tree and mirrors every change into the session and
// durable stores.
type Manager struct {
	mu         sync.Mutex
	key        string
	session    Store
	durable    Store
	doc        document
	validators map[string]Validator
	client     *http.Client
}

// New builds a manager persisting under key. Restore prefers the session
// channel; the durable channel is the fallback for drafts.
func New(key string, session, durable Store) *Manager {
	m := &Manager{
		key:        key,
		session:    session,
		durable:    durable,
		validators: make(map[string]Validator),
		client:     http.DefaultClient,
		doc: document{
			Sections:    make(map[string]map[string]any),
			Attachments: make(map[string]attachment),
		},
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	payload, ok := m.session.Get(m.key)
	if !ok {
		payload, ok = m.durable.Get(m.key)
	}
	if !ok {
		return
	}

	var doc document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return
	}
	if doc.Sections == nil {
		doc.Sections = make(map[string]map[string]any)
	}
	if doc.Attachments == nil {
		doc.Attachments = make(map[string]attachment)
	}
	m.doc = doc
}

// Update shallow-merges the partial object into the named section and
// persists the whole tree.
func (m *Manager) Update(section string, partial map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !validSection(section) {
		return fmt.Errorf("unknown form section: %s", section)
	}

	current := m.doc.Sections[section]
	if current == nil {
		current = make(map[string]any)
	}
	for k, v := range partial {
		current[k] = v
	}
	m.doc.Sections[section] = current

	return m.persist()
}

func (m *Manager) UpdateBasics(partial map[string]any) error {
	return m.Update(SectionBasics, partial)
}

func (m *Manager) UpdateRequirements(partial map[string]any) error {
	return m.Update(SectionRequirements, partial)
}

func (m *Manager) UpdatePrizeTimeline(partial map[string]any) error {
	return m.Update(SectionPrizeTimeline, partial)
}

func (m *Manager) UpdateReview(partial map[string]any) error {
	return m.Update(SectionReview, partial)
}

// Section returns a copy of the named section.
func (m *Manager) Section(section string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]any, len(m.doc.Sections[section]))
	for k, v := range m.doc.Sections[section] {
		out[k] = v
	}
	return out
}

// SetAttachment stores a binary blob as base64 inside the tree.
func (m *Manager) SetAttachment(name, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc.Attachments[name] = attachment{
		Name:        name,
		ContentType: contentType,
		Data:        base64.StdEncoding.EncodeToString(data),
	}
	return m.persist()
}

// Attachment decodes a stored blob back to bytes.
func (m *Manager) Attachment(name string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.doc.Attachments[name]
	if !ok {
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, "", false
	}
	return data, a.ContentType, true
}

// RegisterValidator installs a predicate under key, replacing any previous
// one with the same key.
func (m *Manager) RegisterValidator(key string, v Validator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validators[key] = v
}

// Validate runs every registered predicate.
func (m *Manager) Validate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validateLocked()
}

func (m *Manager) validateLocked() bool {
	for _, v := range m.validators {
		if !v(m.doc.Sections) {
			return false
		}
	}
	return true
}

// SetHTTPClient overrides the client used by Submit.
func (m *Manager) SetHTTPClient(client *http.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if client != nil {
		m.client = client
	}
}

// Submit validates, then posts the tree as one multipart request: each
// section is a JSON-stringified field, each attachment a raw file part. A
// successful non-draft submission clears both storage channels; draft saves
// keep state for the next session.
func (m *Manager) Submit(url string, draft bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.validateLocked() {
		return fmt.Errorf("form validation failed")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, section := range sectionOrder {
		data, err := json.Marshal(m.doc.Sections[section])
		if err != nil {
			return fmt.Errorf("failed to serialize section %s: %w", section, err)
		}
		if err := writer.WriteField(section, string(data)); err != nil {
			return err
		}
	}
	if err := writer.WriteField("draft", fmt.Sprintf("%t", draft)); err != nil {
		return err
	}

	for name, a := range m.doc.Attachments {
		data, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return fmt.Errorf("failed to decode attachment %s: %w", name, err)
		}
		part, err := writer.CreateFormFile(name, a.Name)
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := m.client.Post(url, writer.FormDataContentType(), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("submission rejected with status %d: %s", resp.StatusCode, string(payload))
	}

	if !draft {
		_ = m.session.Delete(m.key)
		_ = m.durable.Delete(m.key)
		m.doc = document{
			Sections:    make(map[string]map[string]any),
			Attachments: make(map[string]attachment),
		}
	}
	return nil
}

func (m *Manager) persist() error {
	payload, err := json.Marshal(m.doc)
	if err != nil {
		return fmt.Errorf("failed to serialize form state: %w", err)
	}
	if err := m.session.Set(m.key, string(payload)); err != nil {
		return err
	}
	return m.durable.Set(m.key, string(payload))
}

func validSection(section string) bool {
	for _, s := range sectionOrder {
		if s == section {
			return true
		}
	}
	return false
}
