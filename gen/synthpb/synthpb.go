// Package synthpb holds hand-maintained Go bindings for proto/synth.proto.
// The messages use the legacy struct-tag form, which the protobuf runtime
// derives descriptors for at runtime; keep the tags in sync with the .proto
// file when the schema changes.
package synthpb

import "fmt"

// #region messages

// Complex is one matrix entry.
type Complex struct {
	Real float64 `protobuf:"fixed64,1,opt,name=real" json:"real,omitempty"`
	Imag float64 `protobuf:"fixed64,2,opt,name=imag" json:"imag,omitempty"`
}

func (m *Complex) Reset()         { *m = Complex{} }
func (m *Complex) String() string { return fmt.Sprintf("%+v", *m) }
func (*Complex) ProtoMessage()    {}

// BasisGate names one member of the basis library by family.
type BasisGate struct {
	Family string `protobuf:"bytes,1,opt,name=family" json:"family,omitempty"`
}

func (m *BasisGate) Reset()         { *m = BasisGate{} }
func (m *BasisGate) String() string { return fmt.Sprintf("%+v", *m) }
func (*BasisGate) ProtoMessage()    {}

// DecomposeRequest carries the target unitary and synthesis settings.
type DecomposeRequest struct {
	NumQubits      int32        `protobuf:"varint,1,opt,name=num_qubits,json=numQubits" json:"num_qubits,omitempty"`
	Target         []*Complex   `protobuf:"bytes,2,rep,name=target" json:"target,omitempty"`
	BasisGates     []*BasisGate `protobuf:"bytes,3,rep,name=basis_gates,json=basisGates" json:"basis_gates,omitempty"`
	CostFunction   string       `protobuf:"bytes,4,opt,name=cost_function,json=costFunction" json:"cost_function,omitempty"`
	MaxIterations  int32        `protobuf:"varint,5,opt,name=max_iterations,json=maxIterations" json:"max_iterations,omitempty"`
	ReinitAttempts int32        `protobuf:"varint,6,opt,name=reinit_attempts,json=reinitAttempts" json:"reinit_attempts,omitempty"`
	Seed           int64        `protobuf:"varint,7,opt,name=seed" json:"seed,omitempty"`
	Threshold      float64      `protobuf:"fixed64,8,opt,name=threshold" json:"threshold,omitempty"`
}

func (m *DecomposeRequest) Reset()         { *m = DecomposeRequest{} }
func (m *DecomposeRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*DecomposeRequest) ProtoMessage()    {}

// Placement is one bound gate in the reply circuit.
type Placement struct {
	Family string    `protobuf:"bytes,1,opt,name=family" json:"family,omitempty"`
	Qubits []int32   `protobuf:"varint,2,rep,packed,name=qubits" json:"qubits,omitempty"`
	Params []float64 `protobuf:"fixed64,3,rep,packed,name=params" json:"params,omitempty"`
}

func (m *Placement) Reset()         { *m = Placement{} }
func (m *Placement) String() string { return fmt.Sprintf("%+v", *m) }
func (*Placement) ProtoMessage()    {}

// DecomposeReply is the synthesis outcome.
type DecomposeReply struct {
	Placements []*Placement `protobuf:"bytes,1,rep,name=placements" json:"placements,omitempty"`
	Converged  bool         `protobuf:"varint,2,opt,name=converged" json:"converged,omitempty"`
	Cost       float64      `protobuf:"fixed64,3,opt,name=cost" json:"cost,omitempty"`
	Iterations int32        `protobuf:"varint,4,opt,name=iterations" json:"iterations,omitempty"`
	RunId      string       `protobuf:"bytes,5,opt,name=run_id,json=runId" json:"run_id,omitempty"`
}

func (m *DecomposeReply) Reset()         { *m = DecomposeReply{} }
func (m *DecomposeReply) String() string { return fmt.Sprintf("%+v", *m) }
func (*DecomposeReply) ProtoMessage()    {}

// #endregion messages
