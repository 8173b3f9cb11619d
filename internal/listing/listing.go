// Package listing writes an assembly listing of a program.
package listing

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/disasm"
	"github.com/retroenv/retrogolib/set"
)

const (
	dataNaming   = "_data_%04x"
	funcNaming   = "_func_%04x"
	labelNaming  = "_label_%04x"
	commentAlign = 32
)

// Options of the listing output.
type Options struct {
	ZeroBytes      bool // include trailing zero bytes
	HexComments    bool // add the opcode bytes as comment
	OffsetComments bool // add the address as comment
}

// line is a single instruction word or data entry of the listing.
type line struct {
	address uint16
	data    []byte
	code    string
	label   string
	comment string
}

type lister struct {
	w       io.Writer
	opts    Options
	program []byte

	calls      set.Set[uint16]
	jumps      set.Set[uint16]
	references set.Set[uint16]
}

// Write writes the listing of the program as loaded at chip8.ProgramStart.
func Write(w io.Writer, program []byte, opts Options) error {
	if err := chip8.ValidateProgram(program); err != nil {
		return fmt.Errorf("validating program: %w", err)
	}

	l := &lister{
		w:          w,
		opts:       opts,
		program:    program,
		calls:      set.New[uint16](),
		jumps:      set.New[uint16](),
		references: set.New[uint16](),
	}

	lines := l.split(endIndex(program, opts.ZeroBytes))
	l.collectTargets(lines)

	if err := l.writeHeader(); err != nil {
		return err
	}
	skipped := false
	for i, ln := range lines {
		l.annotate(&ln)
		if err := l.writeLine(ln); err != nil {
			return fmt.Errorf("writing line at $%04X: %w", ln.address, err)
		}

		if ln.endsBlock(skipped) && i < len(lines)-1 {
			if _, err := fmt.Fprintln(l.w); err != nil {
				return fmt.Errorf("writing block separator: %w", err)
			}
		}
		skipped = ln.code != "" && disasm.IsSkip(ln.opcode())
	}
	return nil
}

// endIndex finds the end of the meaningful program bytes. The end is
// extended to the second byte of a word that ends in zero.
func endIndex(program []byte, zeroBytes bool) int {
	if zeroBytes {
		return len(program)
	}

	end := len(program)
	for end > 0 && program[end-1] == 0 {
		end--
	}
	if end%2 == 1 && end < len(program) {
		end++
	}
	return end
}

// split cuts the program into instruction words. A trailing odd byte is
// kept as data.
func (l *lister) split(end int) []line {
	lines := make([]line, 0, (end+1)/2)

	for i := 0; i < end; i += 2 {
		ln := line{
			address: uint16(chip8.ProgramStart + i),
			data:    l.program[i:min(i+2, end)],
		}
		if len(ln.data) == 2 {
			opcode := uint16(ln.data[0])<<8 | uint16(ln.data[1])
			if code, ok := disasm.Instruction(opcode); ok {
				ln.code = code
			}
		}
		lines = append(lines, ln)
	}
	return lines
}

// collectTargets records all addresses that are referenced by decoded
// instructions and that start a line of the listing.
func (l *lister) collectTargets(lines []line) {
	start := uint16(chip8.ProgramStart)
	end := start + uint16(2*len(lines))

	for _, ln := range lines {
		if ln.code == "" {
			continue
		}
		opcode := ln.opcode()
		target, ok := disasm.Target(opcode)
		if !ok || target < start || target >= end || (target-start)%2 != 0 {
			continue
		}

		switch {
		case disasm.IsCall(opcode):
			l.calls.Add(target)
		case disasm.IsJump(opcode):
			l.jumps.Add(target)
		default:
			l.references.Add(target)
		}
	}
}

func (ln line) opcode() uint16 {
	return uint16(ln.data[0])<<8 | uint16(ln.data[1])
}

// endsBlock returns whether the line leaves the code block unconditionally.
// A return or jump following a skip instruction may not be executed.
func (ln line) endsBlock(skipped bool) bool {
	if ln.code == "" || skipped {
		return false
	}
	opcode := ln.opcode()
	return disasm.IsReturn(opcode) || disasm.IsJump(opcode)
}

// labelName returns the label of an address if any instruction refers to it.
func (l *lister) labelName(address uint16) string {
	switch {
	case l.calls.Contains(address):
		return fmt.Sprintf(funcNaming, address)
	case l.jumps.Contains(address):
		return fmt.Sprintf(labelNaming, address)
	case l.references.Contains(address):
		return fmt.Sprintf(dataNaming, address)
	default:
		return ""
	}
}

// annotate sets the label and the comment of a line and replaces an address
// operand by its label.
func (l *lister) annotate(ln *line) {
	ln.label = l.labelName(ln.address)

	if ln.code != "" {
		if target, ok := disasm.Target(ln.opcode()); ok {
			if name := l.labelName(target); name != "" {
				ln.code = strings.Replace(ln.code, fmt.Sprintf("$%03X", target), name, 1)
			}
		}
	}

	var comments []string
	if l.opts.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", ln.address))
	}
	if l.opts.HexComments {
		comments = append(comments, hexCodeComment(ln.data))
	}
	ln.comment = strings.Join(comments, "  ")
}

func hexCodeComment(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func (l *lister) writeHeader() error {
	checksum := crc32.ChecksumIEEE(l.program)
	if _, err := fmt.Fprintf(l.w, "; CHIP-8 program listing\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(l.w, "; CRC32 checksum: %08x\n", checksum); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(l.w, "; Program size: %d bytes\n\n", len(l.program)); err != nil {
		return fmt.Errorf("writing program size: %w", err)
	}
	if _, err := fmt.Fprintf(l.w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

func (l *lister) writeLine(ln line) error {
	if ln.label != "" {
		if _, err := fmt.Fprintf(l.w, "%s:\n", ln.label); err != nil {
			return fmt.Errorf("writing label %s: %w", ln.label, err)
		}
	}

	text := "    " + ln.code
	if ln.code == "" {
		text = "    " + dataDirective(ln.data)
	}

	if ln.comment == "" {
		_, err := fmt.Fprintf(l.w, "%s\n", text)
		return err
	}
	_, err := fmt.Fprintf(l.w, "%-*s ; %s\n", commentAlign, text, ln.comment)
	return err
}

func dataDirective(data []byte) string {
	var buf strings.Builder
	buf.WriteString(".byte ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}
	return buf.String()
}
