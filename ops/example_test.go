package ops

import "fmt"

func ExampleTag_String() {
	fmt.Println(TagModuleOp)
	fmt.Println(TagFuncDefn)
	// Output:
	// FuncDefn|FuncDecl|AliasDefn|AliasDecl|Const
	// FuncDefn
}

func ExampleFuncDefn_Signature() {
	fn := FuncDefn{FuncName: "double", Sig: Signature{Input: TypeRow{Int(32)}, Output: TypeRow{Int(32)}}}
	fmt.Println(fn.Signature().OtherOutputs)
	// Output:
	// Const(graph(int<32>) -> (int<32>))
}
