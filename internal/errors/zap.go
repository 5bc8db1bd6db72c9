package errors

import "go.uber.org/zap/zapcore"

// MarshalLogObject lets zap log an *Error as a structured object
func (e *Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("code", e.Code.String())
	enc.AddString("message", e.Message)
	if e.Cause != nil {
		enc.AddString("cause", e.Cause.Error())
	}
	for k, v := range e.Meta {
		if err := enc.AddReflected("meta."+k, v); err != nil {
			return err
		}
	}
	return nil
}
