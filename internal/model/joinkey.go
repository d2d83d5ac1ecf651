package model

import "github.com/pkg/errors"

// JoinKey names the VM field used as key in the canonical name mapping.
//
// The monitored server hostname is looked up against the value of this field,
// both sides of the join go through JoinKey.Of so the pairing lives in one place.
type JoinKey string

const (
	JoinKeyAgentID JoinKey = "agent_id"
	JoinKeyCID     JoinKey = "cid"
	JoinKeyVMID    JoinKey = "id"

	DefaultJoinKey = JoinKeyAgentID
)

var ErrJoinKey = errors.New("unsupported join key")

// JoinKeys returns the supported join keys.
func JoinKeys() []JoinKey {
	return []JoinKey{JoinKeyAgentID, JoinKeyCID, JoinKeyVMID}
}

// ParseJoinKey returns the JoinKey for s, an empty value returns the default.
func ParseJoinKey(s string) (JoinKey, error) {
	if s == "" {
		return DefaultJoinKey, nil
	}

	for _, k := range JoinKeys() {
		if string(k) == s {
			return k, nil
		}
	}

	return "", errors.Wrap(ErrJoinKey, s)
}

// Of returns the value of the join key field on the VM.
func (k JoinKey) Of(vm *VM) string {
	switch k {
	case JoinKeyCID:
		return vm.CID
	case JoinKeyVMID:
		return vm.ID
	default:
		return vm.AgentID
	}
}

// Match returns the key a monitored server is looked up with.
func (k JoinKey) Match(server *Server) string {
	return server.Hostname
}
