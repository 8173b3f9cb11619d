// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for simple games
// on early microcomputers. This package emulates the virtual machine that runs it:
//   - 4KB of memory, the hexadecimal font at 0x000 and programs at ProgramStart
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I, the program counter and a 16 entry return stack
//   - a 64x32 one-bit display buffer with a per-tick changed flag
//   - delay and sound timers and a 16 key hexadecimal keypad
//
// # Execution
//
// The machine has no notion of wall-clock time. Each call to Tick advances it by
// exactly one step:
//  1. The keypad state is stored and the display changed flag is cleared
//  2. While waiting for a key, the lowest pressed key is latched into the target register
//  3. Otherwise both timers count down and one instruction is fetched, decoded and executed
//  4. The display, its changed flag and the beep state are returned
//
// Instructions are decoded into an Instruction value holding a Kind and the
// operands; every Kind has its own handler. Unknown encodings execute as no-ops.
//
// # Usage Example
//
//	m := chip8.New(chip8.WithLogger(logger))
//	if err := m.LoadBytes(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		out := m.Tick(keys, false)
//		if out.Changed {
//			render(&out.Frame)
//		}
//	}
//
// # Limitations
//
//   - No SUPER-CHIP or XO-CHIP extensions
//   - Memory accesses through I and the program counter wrap around the 4KB address space
package chip8
