package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	answerPrefix = "a"
	restartData  = "restart"
)

// answer is a decoded option button press. Gen identifies the quiz the
// button was rendered for.
type answer struct {
	gen, question, option int
}

func answerData(gen, question, option int) string {
	return fmt.Sprintf("%s:%d:%d:%d", answerPrefix, gen, question, option)
}

// parseAnswer decodes callback data built by answerData.
func parseAnswer(data string) (answer, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 || parts[0] != answerPrefix {
		return answer{}, false
	}
	var nums [3]int
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return answer{}, false
		}
		nums[i] = n
	}
	return answer{gen: nums[0], question: nums[1], option: nums[2]}, true
}
