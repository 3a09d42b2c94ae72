package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fundledger/internal/domain"
)

func validateAmount(amount int64) error {
	if amount <= 0 {
		return domain.Fail(domain.ErrValidation, domain.MsgAmountPositive)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Fail(domain.ErrValidation, domain.MsgNameRequired)
	}
	if utf8.RuneCountInString(name) > domain.ProjectNameMaxLen {
		return domain.Fail(domain.ErrValidation, domain.MsgNameTooLong)
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return domain.Fail(domain.ErrValidation, domain.MsgDescriptionRequired)
	}
	return nil
}

func validateNewProject(in domain.NewProject) error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateDescription(in.Description); err != nil {
		return err
	}
	return validateAmount(in.FullAmount)
}

func validatePatch(patch domain.ProjectPatch) error {
	if patch.Empty() {
		return domain.Fail(domain.ErrValidation, domain.MsgEmptyPatch)
	}
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
	}
	if patch.FullAmount != nil {
		return validateAmount(*patch.FullAmount)
	}
	return nil
}

func getProject(ctx context.Context, projects domain.ProjectRepository, id int64) (*domain.CharityProject, error) {
	project, err := projects.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Fail(domain.ErrNotFound, domain.MsgProjectNotFound)
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// checkNameFree fails when another project (not selfID) already uses name.
func checkNameFree(ctx context.Context, projects domain.ProjectRepository, name string, selfID int64) error {
	id, err := projects.FindIDByName(ctx, name)
	if err != nil {
		return fmt.Errorf("check project name: %w", err)
	}
	if id != 0 && id != selfID {
		return domain.Fail(domain.ErrConflict, domain.MsgProjectNameTaken)
	}
	return nil
}

func checkProjectOpen(project *domain.CharityProject) error {
	if project.CloseDate != nil || project.FullyInvested {
		return domain.Fail(domain.ErrPrecondition, domain.MsgProjectClosed)
	}
	return nil
}

func checkFullAmount(project *domain.CharityProject, fullAmount int64) error {
	if fullAmount < project.InvestedAmount {
		return domain.Fail(domain.ErrValidation, domain.MsgFullAmountBelowFunds)
	}
	return nil
}

func checkNoFunds(project *domain.CharityProject) error {
	if project.InvestedAmount > 0 {
		return domain.Fail(domain.ErrPrecondition, domain.MsgProjectHasFunds)
	}
	return nil
}

func applyPatch(project *domain.CharityProject, patch domain.ProjectPatch) {
	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.FullAmount != nil {
		project.FullAmount = *patch.FullAmount
	}
}
