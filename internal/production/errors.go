package production

import "errors"

var (
	// ErrProjectNotFound indicates the project id does not exist.
	ErrProjectNotFound = errors.New("projeto não encontrado")

	// ErrNotEditable indicates the project is not the one currently released
	// by the queue.
	ErrNotEditable = errors.New("projeto não está liberado para edição")

	// ErrAlreadyComplete indicates every stage has already been advanced.
	ErrAlreadyComplete = errors.New("projeto já completou todas as etapas")

	// ErrStagesIncomplete indicates completeProject was called before all
	// stages were marked completed.
	ErrStagesIncomplete = errors.New("nem todas as etapas estão completas")
)
