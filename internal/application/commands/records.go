package commands

import (
	"context"
	"fmt"
	"slices"

	"assessio/internal/application"
	"assessio/internal/domain"
	"assessio/pkg/logger"
)

// SaveAssessmentResult contains the stored record
type SaveAssessmentResult struct {
	Record  domain.Record
	Message string
}

// SaveAssessmentCommand materializes the session into a record and appends
// it to the client's history
type SaveAssessmentCommand struct {
	ws *application.Workspace
}

// NewSaveAssessmentCommand creates a new SaveAssessmentCommand
func NewSaveAssessmentCommand(ws *application.Workspace) *SaveAssessmentCommand {
	return &SaveAssessmentCommand{ws: ws}
}

// Validate checks the required basic info and that something was scored
func (c *SaveAssessmentCommand) Validate() error {
	info := c.ws.Session().BasicInfo
	required := []struct{ field, value string }{
		{"clientName", info.ClientName},
		{"evaluatorName", info.EvaluatorName},
		{"entryDate", info.EntryDate},
		{"periodStart", info.PeriodStart},
		{"periodEnd", info.PeriodEnd},
	}
	for _, r := range required {
		if err := application.ValidateRequired(r.field, r.value); err != nil {
			return err
		}
	}
	if !c.ws.Session().HasScores() {
		return &application.ValidationError{Field: "scores", Message: "score at least one item"}
	}
	return nil
}

// Execute runs the save assessment command
func (c *SaveAssessmentCommand) Execute(ctx context.Context) (*SaveAssessmentResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	session := c.ws.Session().Clone()
	session.BasicInfo = trimInfo(session.BasicInfo)
	client := session.BasicInfo.ClientName
	key, ok := domain.RecordKey(client)
	if !ok {
		return nil, application.ErrNoStorage
	}

	existing, err := c.ws.Records().List(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	now := c.ws.Clock().Now()
	record := domain.NewRecord(nextRecordID(now.UnixMilli(), existing), session, c.ws.Catalog().Items(), now)
	if err := c.ws.Records().Append(ctx, client, record); err != nil {
		return nil, c.ws.StorageFailure(ctx, "append", key, err)
	}

	c.ws.Metrics().AssessmentSaved()
	c.ws.Logger().Info(ctx, "assessment saved",
		logger.String("key", key), logger.Int64("id", record.ID), logger.Int("scores", len(record.Scores)))

	return &SaveAssessmentResult{
		Record:  record,
		Message: fmt.Sprintf("Saved assessment for %s (ID %d)", client, record.ID),
	}, nil
}

// nextRecordID returns candidate, bumped past any ID already in records
func nextRecordID(candidate int64, records []domain.Record) int64 {
	taken := make(map[int64]bool, len(records))
	for _, r := range records {
		taken[r.ID] = true
	}
	for taken[candidate] {
		candidate++
	}
	return candidate
}

// RecordSummary is one history line
type RecordSummary struct {
	Record  domain.Record
	Average float64
	Loaded  bool
}

// AverageText renders the average with two decimals
func (s RecordSummary) AverageText() string {
	return fmt.Sprintf("%.2f", s.Average)
}

// ListRecordsResult contains a client's history, newest first
type ListRecordsResult struct {
	ClientName string
	Records    []RecordSummary
	Message    string
}

// ListRecordsCommand lists the saved assessments of a client. A blank
// ClientName falls back to the client of the current session.
type ListRecordsCommand struct {
	ws         *application.Workspace
	ClientName string
}

// NewListRecordsCommand creates a new ListRecordsCommand
func NewListRecordsCommand(ws *application.Workspace, clientName string) *ListRecordsCommand {
	return &ListRecordsCommand{ws: ws, ClientName: clientName}
}

// Execute runs the list records command
func (c *ListRecordsCommand) Execute(ctx context.Context) (*ListRecordsResult, error) {
	client := clientOrSession(c.ws, c.ClientName)
	if _, ok := domain.RecordKey(client); !ok {
		return &ListRecordsResult{Message: "Enter a client name to see past assessments"}, nil
	}

	records, err := c.ws.Records().List(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	loaded := c.ws.Session().LoadedRecordID
	summaries := make([]RecordSummary, 0, len(records))
	for _, r := range slices.Backward(records) {
		summaries = append(summaries, RecordSummary{
			Record:  r,
			Average: r.AverageScore(),
			Loaded:  loaded != 0 && r.ID == loaded,
		})
	}

	msg := fmt.Sprintf("%d past assessments for %s", len(summaries), client)
	if len(summaries) == 0 {
		msg = fmt.Sprintf("No past assessments for %s", client)
	}
	return &ListRecordsResult{ClientName: client, Records: summaries, Message: msg}, nil
}

// LoadRecordResult contains the record now in the session
type LoadRecordResult struct {
	Record  domain.Record
	Message string
}

// LoadRecordCommand reloads a saved assessment into the session. The catalog
// is replaced by the record's snapshot so the scores line up with the items
// they were given for.
type LoadRecordCommand struct {
	ws         *application.Workspace
	ClientName string
	RecordID   int64
}

// NewLoadRecordCommand creates a new LoadRecordCommand
func NewLoadRecordCommand(ws *application.Workspace, clientName string, recordID int64) *LoadRecordCommand {
	return &LoadRecordCommand{ws: ws, ClientName: clientName, RecordID: recordID}
}

// Execute runs the load record command
func (c *LoadRecordCommand) Execute(ctx context.Context) (*LoadRecordResult, error) {
	client := clientOrSession(c.ws, c.ClientName)
	if _, ok := domain.RecordKey(client); !ok {
		return nil, application.ErrNoStorage
	}

	record, err := c.ws.Records().Find(ctx, client, c.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("record %d: %w", c.RecordID, application.ErrNotFound)
	}

	err = c.ws.UpdateCatalog(ctx, func(catalog *domain.Catalog, s *domain.Session) error {
		if len(record.Items) > 0 {
			catalog.Replace(record.Items)
		}
		s.LoadRecord(*record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	c.ws.Metrics().AssessmentLoaded()
	c.ws.Logger().Info(ctx, "assessment loaded", logger.Int64("id", record.ID), logger.Int("items", len(record.Items)))

	return &LoadRecordResult{
		Record:  *record,
		Message: fmt.Sprintf("Loaded assessment of %s (%s)", record.BasicInfo.EntryDate, record.BasicInfo.ClientName),
	}, nil
}

// DeleteRecordResult reports whether a record was removed
type DeleteRecordResult struct {
	Deleted bool
	Message string
}

// DeleteRecordCommand removes a saved assessment from a client's history
type DeleteRecordCommand struct {
	ws         *application.Workspace
	ClientName string
	RecordID   int64
}

// NewDeleteRecordCommand creates a new DeleteRecordCommand
func NewDeleteRecordCommand(ws *application.Workspace, clientName string, recordID int64) *DeleteRecordCommand {
	return &DeleteRecordCommand{ws: ws, ClientName: clientName, RecordID: recordID}
}

// Execute runs the delete record command. A missing record is not an error.
func (c *DeleteRecordCommand) Execute(ctx context.Context) (*DeleteRecordResult, error) {
	client := clientOrSession(c.ws, c.ClientName)
	key, ok := domain.RecordKey(client)
	if !ok {
		return &DeleteRecordResult{Message: "No client selected"}, nil
	}

	record, err := c.ws.Records().Find(ctx, client, c.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}
	if record == nil {
		return &DeleteRecordResult{Message: fmt.Sprintf("Record %d not found", c.RecordID)}, nil
	}

	if err := c.ws.Records().Remove(ctx, client, c.RecordID); err != nil {
		return nil, c.ws.StorageFailure(ctx, "remove", key, err)
	}

	if c.ws.Session().LoadedRecordID == c.RecordID {
		err := c.ws.UpdateSession(ctx, func(s *domain.Session) error {
			s.LoadedRecordID = 0
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	c.ws.Metrics().AssessmentDeleted()
	c.ws.Logger().Info(ctx, "assessment deleted", logger.String("key", key), logger.Int64("id", c.RecordID))

	return &DeleteRecordResult{
		Deleted: true,
		Message: fmt.Sprintf("Deleted assessment %d", c.RecordID),
	}, nil
}

func clientOrSession(ws *application.Workspace, client string) string {
	if client == "" {
		return ws.Session().BasicInfo.ClientName
	}
	return client
}
