package production

import "fmt"

// State is the queue-relevant slice of a project row, read under lock before
// a transition is applied.
type State struct {
	Name         string
	CurrentStage int
	CanEdit      bool
	StagesDone   int
}

// Transition describes the writes a queue transition must apply. Advance and
// Complete are two entry predicates into the same transition so the release
// rule cannot diverge between them.
type Transition struct {
	// StageToComplete is the stage index to mark completed, -1 when the
	// transition does not touch an individual stage row.
	StageToComplete int
	NextStage       int
	Progress        int
	// Finished means production is done: can_edit drops and the next queued
	// project is released.
	Finished bool
	Activity string
}

// Advance computes the transition for finishing the project's current stage.
func Advance(s State) (Transition, error) {
	if !s.CanEdit {
		return Transition{}, ErrNotEditable
	}
	if s.CurrentStage >= StageCount {
		return Transition{}, ErrAlreadyComplete
	}

	next := s.CurrentStage + 1
	t := Transition{
		StageToComplete: s.CurrentStage,
		NextStage:       next,
		Progress:        ProgressFor(next),
		Finished:        next == StageCount,
	}
	if t.Finished {
		t.Activity = CompletionActivity(s.Name)
	} else {
		t.Activity = fmt.Sprintf("Etapa %q concluída para %s", StageNames[s.CurrentStage], s.Name)
	}
	return t, nil
}

// Complete computes the transition for the explicit complete entry point,
// which requires every stage row to already be marked completed.
func Complete(s State) (Transition, error) {
	if !s.CanEdit {
		return Transition{}, ErrNotEditable
	}
	if s.StagesDone < StageCount {
		return Transition{}, ErrStagesIncomplete
	}

	return Transition{
		StageToComplete: -1,
		NextStage:       StageCount,
		Progress:        100,
		Finished:        true,
		Activity:        CompletionActivity(s.Name),
	}, nil
}

// CompletionActivity is the audit entry for a finished aircraft.
func CompletionActivity(name string) string {
	return fmt.Sprintf("Aeronave %s concluída com sucesso!", name)
}

// ReleaseActivity is the audit entry for the next queued aircraft being
// unblocked.
func ReleaseActivity(name string) string {
	return fmt.Sprintf("Aeronave %s liberada para produção", name)
}

// CreationActivity is the audit entry for a newly registered aircraft. The
// entry type is "progress" when the aircraft starts editable and "alert"
// when it joins the waiting queue.
func CreationActivity(name string, canEdit bool) (description, activityType string) {
	description = fmt.Sprintf("Nova aeronave %s adicionada ao sistema", name)
	if canEdit {
		return description, "progress"
	}
	return description, "alert"
}
