package command

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Validator decodes command envelopes and gates them on the client signature
type Validator struct {
	signatures []string
}

func NewValidator(signatures []string) *Validator {
	return &Validator{signatures: signatures}
}

// Parse decodes raw into an Envelope. It fails with ErrParse when raw is not
// valid JSON or its top level or data member is not an object
func Parse(raw []byte) (*Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, parseError(err.Error())
	}

	fields, ok := root.(map[string]any)
	if !ok {
		return nil, parseError("")
	}

	env := &Envelope{}
	for name, value := range fields {
		switch name {
		case "software":
			env.Software = asString(value)
		case "vMajor":
			env.VMajor = asInt(value)
		case "vMinor":
			env.VMinor = asInt(value)
		case "isBeta":
			env.IsBeta = AsBool(value)
		case "vBeta":
			env.VBeta = asInt(value)
		case "mode":
			env.Mode = Mode(asInt(value))
		case "data":
			if data, ok := value.(map[string]any); ok {
				env.Data = data
			}
		}
	}

	if env.Data == nil {
		return nil, parseError("")
	}

	return env, nil
}

// Validate parses raw and dispatches it. Only ModeListVideos yields a command;
// every other mode is rejected on this path
func (v *Validator) Validate(raw []byte) (*Envelope, *ListVideosCommand, error) {
	env, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	cmd, err := v.Dispatch(env)
	if err != nil {
		return env, nil, err
	}
	return env, cmd, nil
}

func (v *Validator) Dispatch(env *Envelope) (*ListVideosCommand, error) {
	if !v.signatureAccepted(env.Software) {
		return nil, newError(ErrUnauthorized, v.signatureMessage(env.Software))
	}

	switch env.Mode {
	case ModeInfo, ModeListChannels, ModeListLivestreams:
		// Served by the direct query path only
		return nil, ErrNotAvailable
	case ModeListVideos:
		cmd := DecodeListVideos(env.Data)
		return &cmd, nil
	default:
		return nil, ErrUnknownFunction
	}
}

func (v *Validator) signatureAccepted(software string) bool {
	if software == "" {
		return false
	}
	for _, sig := range v.signatures {
		if sig == software {
			return true
		}
	}
	return false
}

func (v *Validator) signatureMessage(software string) string {
	quoted := make([]string, 0, len(v.signatures))
	for _, sig := range v.signatures {
		quoted = append(quoted, "'"+sig+"'")
	}
	return fmt.Sprintf("The given signature is '%s',\nbut %s is expected.", software, strings.Join(quoted, " or "))
}

// DecodeListVideos reads the list videos payload. Unknown members are ignored
// and missing ones keep their zero value
func DecodeListVideos(data map[string]any) ListVideosCommand {
	var cmd ListVideosCommand
	for name, value := range data {
		switch name {
		case "channel":
			cmd.Channel = asString(value)
		case "timeMode":
			cmd.TimeMode = TimeMode(asInt(value))
		case "epoch":
			cmd.Epoch = asInt(value)
		case "duration":
			cmd.Duration = asInt(value)
		case "limit":
			cmd.Limit = asInt(value)
		case "start":
			cmd.Start = asInt(value)
		case "refTime":
			cmd.RefTime = int64(asInt(value))
		}
	}
	return cmd
}
