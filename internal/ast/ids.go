package ast

type (
	FuncID    uint32
	ParamID   uint32
	VarDeclID uint32
	TypeID    uint32 // a type-denoting node, not a semantic type
	StmtID    uint32
	ExprID    uint32
	LeftID    uint32
)

const (
	NoFuncID    FuncID    = 0
	NoParamID   ParamID   = 0
	NoVarDeclID VarDeclID = 0
	NoTypeID    TypeID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoLeftID    LeftID    = 0
)

func (id FuncID) IsValid() bool    { return id != NoFuncID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
func (id VarDeclID) IsValid() bool { return id != NoVarDeclID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id LeftID) IsValid() bool    { return id != NoLeftID }
