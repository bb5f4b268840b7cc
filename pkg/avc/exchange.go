package avc

import (
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/log"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// Control sends cmd as a mutation and returns the echoed value bytes.
func Control(cmdr transport.Commander, cmd *Command, logger log.Logger, session string, timeout time.Duration) ([]byte, error) {
	return exchange(cmdr, cmd, CTypeControl, logger, session, timeout)
}

// Status sends cmd as a query and returns the reported value bytes.
func Status(cmdr transport.Commander, cmd *Command, logger log.Logger, session string, timeout time.Duration) ([]byte, error) {
	return exchange(cmdr, cmd, CTypeStatus, logger, session, timeout)
}

func exchange(cmdr transport.Commander, cmd *Command, ct CType, logger log.Logger, session string, timeout time.Duration) ([]byte, error) {
	logger = log.OrNoop(logger)
	logger.Log(log.NewCommandEvent(session, log.DirectionOut, log.CommandEvent{
		Opcode:   cmd.Opcode,
		Selector: cmd.Selector,
		Index:    cmd.Index,
		Value:    append([]byte(nil), cmd.Value...),
	}))

	frame := cmd.Build(ct)

	var resp []byte
	var err error
	if ct == CTypeControl {
		resp, err = cmdr.Control(frame, timeout)
	} else {
		resp, err = cmdr.Status(frame, timeout)
	}
	if err != nil {
		logger.Log(log.NewErrorEvent(session, log.LayerCommand, err.Error(), "command exchange"))
		return nil, err
	}

	value, err := cmd.ParseResponse(resp)
	if err != nil {
		logger.Log(log.NewErrorEvent(session, log.LayerCommand, err.Error(), "response parse"))
		return nil, err
	}

	event := log.CommandEvent{
		Opcode:   cmd.Opcode,
		Selector: cmd.Selector,
		Index:    cmd.Index,
		Value:    append([]byte(nil), value...),
		Response: resp[0],
	}
	logger.Log(log.NewCommandEvent(session, log.DirectionIn, event))
	return value, nil
}
