package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/utils"
)

// Roster is the YAML document accepted by ImportRoster.
type Roster struct {
	Workers []RosterEntry `yaml:"workers"`
}

type RosterEntry struct {
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Phone      string `yaml:"phone"`
	Email      string `yaml:"email"`
	Supervisor string `yaml:"supervisor"`
}

// ImportResult reports which roster entries were created and which were
// already present.
type ImportResult struct {
	Created []string
	Skipped []string
}

func (s *TimebotService) AddWorker(ctx context.Context, firstName, lastName, phone, email, supervisor string) (*models.Worker, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}
	if strings.ContainsAny(firstName+lastName, " \t") {
		return nil, fmt.Errorf("names must be single words, got '%s %s'", firstName, lastName)
	}

	_, found, err := s.db.LookupWorker(ctx, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}
	if found {
		return nil, fmt.Errorf("worker '%s %s' already exists", firstName, lastName)
	}

	worker := &models.Worker{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     utils.OptionalString(phone),
		Email:     utils.OptionalString(email),
	}

	if supervisor = strings.TrimSpace(supervisor); supervisor != "" {
		supFirst, supLast, ok := strings.Cut(supervisor, " ")
		if !ok {
			return nil, fmt.Errorf("supervisor must be given as 'First Last', got '%s'", supervisor)
		}
		supID, found, err := s.db.LookupWorker(ctx, supFirst, strings.TrimSpace(supLast))
		if err != nil {
			return nil, fmt.Errorf("failed to look up supervisor: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("supervisor '%s' does not exist", supervisor)
		}
		worker.SupervisorID = &supID
	}

	created, err := s.db.CreateWorker(ctx, worker)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	s.logger.Info("Created worker",
		zap.Int64("worker_id", created.ID),
		zap.String("first_name", created.FirstName),
		zap.String("last_name", created.LastName),
	)
	return created, nil
}

func (s *TimebotService) ListWorkers(ctx context.Context) ([]*models.Worker, error) {
	workers, err := s.db.ListWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

// ImportRoster creates every worker in the YAML roster that does not exist
// yet. Supervisors must be listed before the workers that report to them
// or exist already.
func (s *TimebotService) ImportRoster(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var roster Roster
	if err := yaml.NewDecoder(r).Decode(&roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	result := &ImportResult{}
	for i, entry := range roster.Workers {
		name := strings.TrimSpace(entry.FirstName + " " + entry.LastName)

		_, found, err := s.db.LookupWorker(ctx, strings.TrimSpace(entry.FirstName), strings.TrimSpace(entry.LastName))
		if err != nil {
			return result, fmt.Errorf("failed to look up roster entry %d: %w", i+1, err)
		}
		if found {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if _, err := s.AddWorker(ctx, entry.FirstName, entry.LastName, entry.Phone, entry.Email, entry.Supervisor); err != nil {
			return result, fmt.Errorf("failed to import roster entry %d (%s): %w", i+1, name, err)
		}
		result.Created = append(result.Created, name)
	}

	return result, nil
}
