package production

import "math"

// StageNames são as 5 etapas fixas de montagem, na ordem em que devem ser
// concluídas.
var StageNames = [...]string{"Fuselagem", "Asas", "Motores", "Sistemas", "Testes"}

// StageCount is also the currentStage value of a finished project.
const StageCount = len(StageNames)

// ProgressFor converts a stage index into the percentage shown on the
// dashboard: 0, 20, 40, 60, 80, 100.
func ProgressFor(stageIndex int) int {
	return int(math.Round(float64(stageIndex) / float64(StageCount) * 100))
}
