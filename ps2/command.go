package ps2

// Command descriptors. The high nibble is the number of argument bytes
// the host sends after the opcode, the next nibble the number of response
// bytes the device returns, and the low byte the opcode itself. The
// counts are a contract with the device protocol, not runtime-checked.
const (
	CmdSetScale11 uint16 = 0x00E6
	CmdSetRate    uint16 = 0x10F3
	CmdEnable     uint16 = 0x00F4
	CmdDisable    uint16 = 0x00F5
	CmdResetBAT   uint16 = 0x02FF
	CmdSetRes     uint16 = 0x10E8
	CmdGetInfo    uint16 = 0x03E9
)

// Command runs one synchronous exchange: opcode, argument bytes, response
// bytes, as declared by the descriptor. The receive interrupt is disarmed
// and any partially assembled asynchronous frame discarded for the whole
// transaction, then reception is re-armed.
//
// The transaction always runs to completion; a NACK on one of the writes
// is remembered and returned, but the remaining bytes are still exchanged
// so the device and host stay in step.
func (e *Engine) Command(command uint16, args []byte, result []byte) error {
	e.suspendReceive()
	defer e.resumeReceive()

	send := int(command>>12) & 0x0F
	receive := int(command>>8) & 0x0F

	err := e.WriteByte(byte(command))

	for i := 0; i < send; i++ {
		var arg byte
		if i < len(args) {
			arg = args[i]
		}
		if werr := e.WriteByte(arg); werr != nil && err == nil {
			err = werr
		}
	}

	for i := 0; i < receive; i++ {
		response := e.readByte()
		if result != nil && i < len(result) {
			result[i] = response
		}
	}

	return err
}

// Reset issues the reset command and discards the BAT completion
// response (0xAA plus device ID).
func (e *Engine) Reset() error {
	var bat [2]byte
	return e.Command(CmdResetBAT, nil, bat[:])
}

// Enable puts the device in streaming mode.
func (e *Engine) Enable() error { return e.Command(CmdEnable, nil, nil) }

// Disable stops streaming. Required before most configuration sequences.
func (e *Engine) Disable() error { return e.Command(CmdDisable, nil, nil) }
