// Package conversation assembles chunked payloads into the fixed
// three-stage message sequence sent to the model: one context message, one
// data message per chunk, one trailing instruction message.
package conversation

import (
	"fmt"

	"codescope/internal/provider"
)

// Stages holds the static text surrounding the data chunks.
type Stages struct {
	// Context is sent first as a system message framing the task.
	Context string
	// Instruction is sent last and tells the model what to produce.
	Instruction string
}

// Conversation is an assembled message sequence. The order is fixed:
// Context, then Data in chunk order, then Instruction.
type Conversation struct {
	Context     provider.Message
	Data        []provider.Message
	Instruction provider.Message
}

// Build labels each chunk with its position when the payload was split.
// With a single chunk the data message carries a generic label instead,
// and the instruction is left unannotated.
func Build(stages Stages, chunks []string) Conversation {
	conv := Conversation{
		Context: provider.NewSystemMessage(stages.Context),
		Data:    make([]provider.Message, 0, len(chunks)),
	}

	total := len(chunks)
	for i, chunk := range chunks {
		var label string
		if total > 1 {
			label = fmt.Sprintf("Data part %d of %d:\n\n%s", i+1, total, chunk)
		} else {
			label = fmt.Sprintf("Data to analyze:\n\n%s", chunk)
		}
		conv.Data = append(conv.Data, provider.NewUserMessage(label))
	}

	instruction := stages.Instruction
	if total > 1 {
		instruction = fmt.Sprintf("The data was provided in %d parts. %s", total, instruction)
	}
	conv.Instruction = provider.NewUserMessage(instruction)

	return conv
}

// Messages flattens the conversation in wire order.
func (c Conversation) Messages() []provider.Message {
	out := make([]provider.Message, 0, len(c.Data)+2)
	out = append(out, c.Context)
	out = append(out, c.Data...)
	out = append(out, c.Instruction)
	return out
}
