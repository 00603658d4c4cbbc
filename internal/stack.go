package internal

import "fmt"

// StackDepth is the number of nested subroutine calls supported.
const StackDepth = 16

// Stack is the fixed depth return address stack.
type Stack struct {
	addrs [StackDepth]uint16
	sp    uint8 // number of stored return addresses
}

// Push stores a return address.
func (s *Stack) Push(addr uint16) error {
	if int(s.sp) >= StackDepth {
		return fmt.Errorf("push %03X with %d entries: %w", addr, s.sp, ErrStackOverflow)
	}
	s.addrs[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.addrs[s.sp], nil
}

// Pointer returns the number of stored return addresses.
func (s *Stack) Pointer() int {
	return int(s.sp)
}
