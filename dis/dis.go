// Package dis supports disassembling compiled Fern functions into a
// human-readable listing. It is a debugging aid used by the CLI and by
// tests; nothing in the compile or execute path depends on it.
package dis

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/fern-lang/fern/op"
)

// Instruction is one decoded instruction, ready for display.
type Instruction struct {
	Offset   int
	Name     string
	Operands string
	Info     string
}

var opcodeColor = color.New(color.FgCyan)

// Disassemble decodes a function's instruction stream into a list of
// display instructions. It fails on an undefined opcode or a truncated
// immediate, returning whatever was decoded up to that point along with
// the error.
func Disassemble(code []byte) ([]Instruction, error) {
	var out []Instruction
	ip := 0
	for ip < len(code) {
		offset := ip
		info := op.GetInfo(op.Code(code[ip]))
		if info.Name == "" {
			return out, fmt.Errorf("undefined opcode %d at offset %d", code[ip], ip)
		}
		ip++

		var operands []string
		var extra string
		for _, kind := range info.Immediates {
			switch kind {
			case op.ImmU8:
				if ip+1 > len(code) {
					return out, truncated(info.Name, offset)
				}
				operands = append(operands, strconv.Itoa(int(code[ip])))
				if info.Code == op.PushBool {
					extra = strconv.FormatBool(code[ip] != 0)
				}
				ip++
			case op.ImmU32:
				if ip+4 > len(code) {
					return out, truncated(info.Name, offset)
				}
				operands = append(operands, strconv.FormatUint(uint64(binary.LittleEndian.Uint32(code[ip:])), 10))
				ip += 4
			case op.ImmI64:
				if ip+8 > len(code) {
					return out, truncated(info.Name, offset)
				}
				operands = append(operands, strconv.FormatInt(int64(binary.LittleEndian.Uint64(code[ip:])), 10))
				ip += 8
			case op.ImmF64:
				if ip+8 > len(code) {
					return out, truncated(info.Name, offset)
				}
				f := math.Float64frombits(binary.LittleEndian.Uint64(code[ip:]))
				operands = append(operands, strconv.FormatFloat(f, 'g', -1, 64))
				ip += 8
			case op.ImmStr:
				if ip+4 > len(code) {
					return out, truncated(info.Name, offset)
				}
				n := int(binary.LittleEndian.Uint32(code[ip:]))
				ip += 4
				if ip+n > len(code) {
					return out, truncated(info.Name, offset)
				}
				operands = append(operands, strconv.Itoa(n))
				extra = strconv.Quote(string(code[ip : ip+n]))
				ip += n
			}
		}
		out = append(out, Instruction{
			Offset:   offset,
			Name:     info.Name,
			Operands: strings.Join(operands, " "),
			Info:     extra,
		})
	}
	return out, nil
}

func truncated(name string, offset int) error {
	return fmt.Errorf("truncated %s at offset %d", name, offset)
}

// Print writes the instructions to w as an aligned table.
func Print(instructions []Instruction, w io.Writer) {
	headers := []string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	rows := make([][]string, 0, len(instructions))
	for _, ins := range instructions {
		row := []string{strconv.Itoa(ins.Offset), ins.Name, ins.Operands, ins.Info}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	divider := "+"
	for _, width := range widths {
		divider += strings.Repeat("-", width+2) + "+"
	}

	fmt.Fprintln(w, divider)
	fmt.Fprint(w, "|")
	for i, h := range headers {
		fmt.Fprintf(w, " %s |", center(h, widths[i]))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, divider)

	for _, row := range rows {
		fmt.Fprintf(w, "| %*s | ", widths[0], row[0])
		opcodeColor.Fprint(w, row[1])
		fmt.Fprint(w, strings.Repeat(" ", widths[1]-len(row[1])))
		fmt.Fprintf(w, " | %*s | %-*s |\n", widths[2], row[2], widths[3], row[3])
	}
	fmt.Fprintln(w, divider)
}

func center(s string, width int) string {
	pad := width - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
