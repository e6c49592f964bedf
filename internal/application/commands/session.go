package commands

import (
	"context"
	"fmt"
	"strings"

	"assessio/internal/application"
	"assessio/internal/domain"
)

// SessionResult is returned by commands that edit the in-progress assessment
type SessionResult struct {
	Item    domain.Item
	Message string
}

// SetScoreCommand scores one item in the current session
type SetScoreCommand struct {
	ws     *application.Workspace
	ItemID string
	Score  int
}

// NewSetScoreCommand creates a new SetScoreCommand
func NewSetScoreCommand(ws *application.Workspace, itemID string, score int) *SetScoreCommand {
	return &SetScoreCommand{ws: ws, ItemID: itemID, Score: score}
}

// Validate checks the item exists and the score is on the scale
func (c *SetScoreCommand) Validate() error {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	if c.ws.Catalog().IndexOf(c.ItemID) < 0 {
		return fmt.Errorf("item %s: %w", c.ItemID, application.ErrNotFound)
	}
	if !domain.ValidScore(c.Score) {
		return fmt.Errorf("%w: %d (expected %d-%d)", domain.ErrInvalidScore, c.Score, domain.MinScore, domain.MaxScore)
	}
	return nil
}

// Execute runs the set score command
func (c *SetScoreCommand) Execute(ctx context.Context) (*SessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := c.ws.UpdateSession(ctx, func(s *domain.Session) error {
		return s.SetScore(c.ItemID, c.Score)
	})
	if err != nil {
		return nil, err
	}

	item, _ := c.ws.Catalog().At(c.ws.Catalog().IndexOf(c.ItemID))
	return &SessionResult{
		Item:    item,
		Message: fmt.Sprintf("%s: %d (%s)", item.Name, c.Score, domain.ScoreLabel(c.Score)),
	}, nil
}

// ClearScoreCommand removes the score of one item
type ClearScoreCommand struct {
	ws     *application.Workspace
	ItemID string
}

// NewClearScoreCommand creates a new ClearScoreCommand
func NewClearScoreCommand(ws *application.Workspace, itemID string) *ClearScoreCommand {
	return &ClearScoreCommand{ws: ws, ItemID: itemID}
}

// Execute runs the clear score command
func (c *ClearScoreCommand) Execute(ctx context.Context) (*SessionResult, error) {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return nil, err
	}
	if _, ok := c.ws.Session().Score(c.ItemID); !ok {
		return &SessionResult{Message: "Item has no score"}, nil
	}
	err := c.ws.UpdateSession(ctx, func(s *domain.Session) error {
		s.ClearScore(c.ItemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	item, _ := c.ws.Catalog().At(c.ws.Catalog().IndexOf(c.ItemID))
	return &SessionResult{Item: item, Message: fmt.Sprintf("Cleared score: %s", item.Name)}, nil
}

// SetNoteCommand stores free text against one item. Blank text removes the note.
type SetNoteCommand struct {
	ws     *application.Workspace
	ItemID string
	Text   string
}

// NewSetNoteCommand creates a new SetNoteCommand
func NewSetNoteCommand(ws *application.Workspace, itemID, text string) *SetNoteCommand {
	return &SetNoteCommand{ws: ws, ItemID: itemID, Text: text}
}

// Validate checks the item exists
func (c *SetNoteCommand) Validate() error {
	if err := application.ValidateRequired("itemID", c.ItemID); err != nil {
		return err
	}
	if c.ws.Catalog().IndexOf(c.ItemID) < 0 {
		return fmt.Errorf("item %s: %w", c.ItemID, application.ErrNotFound)
	}
	return nil
}

// Execute runs the set note command
func (c *SetNoteCommand) Execute(ctx context.Context) (*SessionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	err := c.ws.UpdateSession(ctx, func(s *domain.Session) error {
		s.SetNote(c.ItemID, c.Text)
		return nil
	})
	if err != nil {
		return nil, err
	}

	item, _ := c.ws.Catalog().At(c.ws.Catalog().IndexOf(c.ItemID))
	msg := fmt.Sprintf("Saved note: %s", item.Name)
	if strings.TrimSpace(c.Text) == "" {
		msg = fmt.Sprintf("Removed note: %s", item.Name)
	}
	return &SessionResult{Item: item, Message: msg}, nil
}

// SetBasicInfoCommand replaces the client and period details of the session
type SetBasicInfoCommand struct {
	ws   *application.Workspace
	Info domain.BasicInfo
}

// NewSetBasicInfoCommand creates a new SetBasicInfoCommand
func NewSetBasicInfoCommand(ws *application.Workspace, info domain.BasicInfo) *SetBasicInfoCommand {
	return &SetBasicInfoCommand{ws: ws, Info: info}
}

// Execute runs the set basic info command
func (c *SetBasicInfoCommand) Execute(ctx context.Context) (*SessionResult, error) {
	info := trimInfo(c.Info)
	err := c.ws.UpdateSession(ctx, func(s *domain.Session) error {
		s.BasicInfo = info
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SessionResult{Message: "Updated basic info"}, nil
}

// NewAssessmentCommand clears the session to start a new assessment
type NewAssessmentCommand struct {
	ws *application.Workspace
}

// NewNewAssessmentCommand creates a new NewAssessmentCommand
func NewNewAssessmentCommand(ws *application.Workspace) *NewAssessmentCommand {
	return &NewAssessmentCommand{ws: ws}
}

// Execute runs the new assessment command
func (c *NewAssessmentCommand) Execute(ctx context.Context) (*SessionResult, error) {
	if err := c.ws.Reset(ctx); err != nil {
		return nil, err
	}
	return &SessionResult{Message: "Started a new assessment"}, nil
}

func trimInfo(info domain.BasicInfo) domain.BasicInfo {
	return domain.BasicInfo{
		ClientName:       strings.TrimSpace(info.ClientName),
		ManagementNumber: strings.TrimSpace(info.ManagementNumber),
		EvaluatorName:    strings.TrimSpace(info.EvaluatorName),
		EntryDate:        strings.TrimSpace(info.EntryDate),
		PeriodStart:      strings.TrimSpace(info.PeriodStart),
		PeriodEnd:        strings.TrimSpace(info.PeriodEnd),
	}
}
