// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// Command name constants. Each is padded with NUL bytes to CommandSize on
// the wire.
const (
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdAddr        = "addr"
	CmdInv         = "inv"
	CmdGetData     = "getdata"
	CmdNotFound    = "notfound"
	CmdGetBlocks   = "getblocks"
	CmdGetHeaders  = "getheaders"
	CmdTx          = "tx"
	CmdBlock       = "block"
	CmdHeaders     = "headers"
	CmdGetAddr     = "getaddr"
	CmdMemPool     = "mempool"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdReject      = "reject"
	CmdFilterLoad  = "filterload"
	CmdFilterAdd   = "filteradd"
	CmdFilterClear = "filterclear"
	CmdMerkleBlock = "merkleblock"
	CmdAlert       = "alert"
	CmdSendHeaders = "sendheaders"
	CmdFeeFilter   = "feefilter"
	CmdSendCmpct   = "sendcmpct"
	CmdCmpctBlock  = "cmpctblock"
	CmdGetBlockTxn = "getblocktxn"
	CmdBlockTxn    = "blocktxn"

	// Deprecated commands: accepted on the wire but never acted on.
	CmdCheckOrder  = "checkorder"
	CmdSubmitOrder = "submitorder"
	CmdReply       = "reply"
)

// deprecatedCommands is the set of command names that are parsed only far
// enough to be discarded; no Message implements them.
var deprecatedCommands = map[string]bool{
	CmdCheckOrder:  true,
	CmdSubmitOrder: true,
	CmdReply:       true,
}

// Message is implemented by every wire protocol payload.
type Message interface {
	// BtcDecode populates the message from its wire payload, which has
	// already been framed, checksummed, and sliced to exactly its
	// declared length.
	BtcDecode(r io.Reader, pver uint32) error

	// BtcEncode writes the message's wire payload (not the frame
	// header) to w.
	BtcEncode(w io.Writer, pver uint32) error

	// Command returns the message's wire command name, without the NUL
	// padding the frame header adds to make it 12 bytes.
	Command() string

	// MaxPayloadLength returns the maximum payload size this message may
	// have at protocol version pver, used to bound allocation before
	// decoding.
	MaxPayloadLength(pver uint32) uint32
}

// emptyMessageForCommand returns a zero-valued Message for command, or nil
// if command names a deprecated or unknown variant.
func emptyMessageForCommand(command string) (Message, error) {
	switch command {
	case CmdVersion:
		return &MsgVersion{}, nil
	case CmdVerAck:
		return &MsgVerAck{}, nil
	case CmdAddr:
		return &MsgAddr{}, nil
	case CmdInv:
		return &MsgInv{}, nil
	case CmdGetData:
		return &MsgGetData{}, nil
	case CmdNotFound:
		return &MsgNotFound{}, nil
	case CmdGetBlocks:
		return &MsgGetBlocks{}, nil
	case CmdGetHeaders:
		return &MsgGetHeaders{}, nil
	case CmdTx:
		return &MsgTx{}, nil
	case CmdBlock:
		return &MsgBlock{}, nil
	case CmdHeaders:
		return &MsgHeaders{}, nil
	case CmdGetAddr:
		return &MsgGetAddr{}, nil
	case CmdMemPool:
		return &MsgMemPool{}, nil
	case CmdPing:
		return &MsgPing{}, nil
	case CmdPong:
		return &MsgPong{}, nil
	case CmdReject:
		return &MsgReject{}, nil
	case CmdFilterLoad:
		return &MsgFilterLoad{}, nil
	case CmdFilterAdd:
		return &MsgFilterAdd{}, nil
	case CmdFilterClear:
		return &MsgFilterClear{}, nil
	case CmdMerkleBlock:
		return &MsgMerkleBlock{}, nil
	case CmdAlert:
		return &MsgAlert{}, nil
	case CmdSendHeaders:
		return &MsgSendHeaders{}, nil
	case CmdFeeFilter:
		return &MsgFeeFilter{}, nil
	case CmdSendCmpct:
		return &MsgSendCmpct{}, nil
	case CmdCmpctBlock:
		return &MsgCmpctBlock{}, nil
	case CmdGetBlockTxn:
		return &MsgGetBlockTxn{}, nil
	case CmdBlockTxn:
		return &MsgBlockTxn{}, nil
	default:
		if deprecatedCommands[command] {
			return nil, errDeprecatedCommand
		}
		return nil, errUnknownCommand
	}
}

var (
	errDeprecatedCommand = fmt.Errorf("deprecated command")
	errUnknownCommand    = fmt.Errorf("unknown command")
)

// IsDeprecatedCommand reports whether command names a variant that is
// accepted on the wire but intentionally never dispatched.
func IsDeprecatedCommand(command string) bool {
	return deprecatedCommands[command]
}

// messageHeader is the 24-byte frame prefix: magic, command, length,
// checksum.
type messageHeader struct {
	magic    BitcoinNet
	command  string
	length   uint32
	checksum [4]byte
}

// emptyPayloadChecksum is DoubleSHA256("")[:4], the fixed checksum for
// zero-length payloads (verack, getaddr, mempool, filterclear,
// sendheaders).
var emptyPayloadChecksum = [4]byte{0x5d, 0xf6, 0xe0, 0xe2}

func checksum(payload []byte) [4]byte {
	if len(payload) == 0 {
		return emptyPayloadChecksum
	}
	h := chainhash.DoubleHashB(payload)
	var sum [4]byte
	copy(sum[:], h[:4])
	return sum
}

func commandToBytes(command string) ([CommandSize]byte, error) {
	var buf [CommandSize]byte
	if len(command) > CommandSize {
		return buf, fmt.Errorf("command %q longer than %d bytes", command, CommandSize)
	}
	copy(buf[:], command)
	return buf, nil
}

func commandFromBytes(buf [CommandSize]byte) string {
	n := bytes.IndexByte(buf[:], 0)
	if n == -1 {
		n = CommandSize
	}
	return string(buf[:n])
}

// EncodeMessage serializes msg into a complete, framed wire message: magic,
// command, length, checksum, followed by the payload.
func EncodeMessage(msg Message, pver uint32, net BitcoinNet) ([]byte, error) {
	var payloadBuf bytes.Buffer
	if err := msg.BtcEncode(&payloadBuf, pver); err != nil {
		return nil, err
	}
	payload := payloadBuf.Bytes()

	maxLen := msg.MaxPayloadLength(pver)
	if uint32(len(payload)) > maxLen {
		return nil, fmt.Errorf("message payload of %d bytes exceeds max allowed %d for command %q",
			len(payload), maxLen, msg.Command())
	}

	cmdBytes, err := commandToBytes(msg.Command())
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, MessageHeaderSize+len(payload))
	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], uint32(net))
	frame = append(frame, magicBuf[:]...)
	frame = append(frame, cmdBytes[:]...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	frame = append(frame, lenBuf[:]...)

	sum := checksum(payload)
	frame = append(frame, sum[:]...)
	frame = append(frame, payload...)

	return frame, nil
}

// FrameError classifies a failure encountered while extracting a frame from
// the inbound byte buffer.
type FrameError struct {
	// Fatal indicates the connection must be dropped (bad magic or a
	// declared payload length over MaxMessagePayload). A
	// non-fatal FrameError means the single message was dropped but the
	// session continues.
	Fatal bool
	msg   string
}

func (e *FrameError) Error() string { return e.msg }

// ErrIncompleteFrame is returned by ExtractFrame when buf does not yet
// contain a full frame; the caller should wait for more bytes and retry
// without consuming anything.
var ErrIncompleteFrame = fmt.Errorf("incomplete frame")

// ExtractFrame attempts to pull exactly one complete, magic-validated frame
// out of the head of buf. It returns the number of bytes the caller should
// discard from buf, the command name, and the raw payload.
//
// Three outcomes beyond success:
//   - ErrIncompleteFrame: fewer than 24 header bytes, or payload not yet
//     fully buffered. consumed is 0; wait for more bytes.
//   - a *FrameError with Fatal=true: bad magic, or a declared payload
//     length over MaxMessagePayload. The connection must be dropped;
//     consumed is meaningless.
//   - a *FrameError with Fatal=false: checksum mismatch. consumed bytes
//     (the whole malformed frame) should still be discarded so the stream
//     resynchronizes on the next frame.
func ExtractFrame(buf []byte, net BitcoinNet) (consumed int, command string, payload []byte, err error) {
	if len(buf) < MessageHeaderSize {
		return 0, "", nil, ErrIncompleteFrame
	}

	magic := BitcoinNet(binary.LittleEndian.Uint32(buf[0:4]))
	if magic != net {
		return 0, "", nil, &FrameError{Fatal: true, msg: fmt.Sprintf("unexpected network magic 0x%08x, want %s", uint32(magic), net)}
	}

	var cmdBytes [CommandSize]byte
	copy(cmdBytes[:], buf[4:4+CommandSize])
	command = commandFromBytes(cmdBytes)

	length := binary.LittleEndian.Uint32(buf[16:20])
	if length > MaxMessagePayload {
		return 0, "", nil, &FrameError{Fatal: true, msg: fmt.Sprintf("declared payload length %d exceeds maximum %d", length, MaxMessagePayload)}
	}

	var wantSum [4]byte
	copy(wantSum[:], buf[20:24])

	total := MessageHeaderSize + int(length)
	if len(buf) < total {
		return 0, "", nil, ErrIncompleteFrame
	}
	payload = buf[MessageHeaderSize:total]

	gotSum := checksum(payload)
	if gotSum != wantSum {
		return total, command, nil, &FrameError{Fatal: false, msg: fmt.Sprintf("checksum mismatch for command %q", command)}
	}

	return total, command, payload, nil
}

// ParsePayload constructs and decodes the typed Message for command from
// payload. Unknown commands return errUnknownCommand (log and discard);
// deprecated commands return errDeprecatedCommand (accepted but ignored).
func ParsePayload(command string, payload []byte, pver uint32) (Message, error) {
	msg, err := emptyMessageForCommand(command)
	if err != nil {
		return nil, err
	}

	maxLen := msg.MaxPayloadLength(pver)
	if uint32(len(payload)) > maxLen {
		return nil, fmt.Errorf("payload of %d bytes for command %q exceeds max allowed %d",
			len(payload), command, maxLen)
	}

	if err := msg.BtcDecode(bytes.NewReader(payload), pver); err != nil {
		return nil, fmt.Errorf("decoding %q payload: %w", command, err)
	}
	return msg, nil
}
