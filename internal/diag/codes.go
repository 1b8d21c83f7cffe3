package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// driver
	DrvInfo                Code = 1000
	DrvUnusedArgument      Code = 1001
	DrvUnknownArgument     Code = 1002
	DrvMissingArgValue     Code = 1003
	DrvNoLinkerLLVMSupport Code = 1004
	DrvUnknownTriple       Code = 1005
	DrvInvalidLinkerName   Code = 1006
	DrvNoInputs            Code = 1007
	DrvMultipleOutputs     Code = 1008

	// toolchain
	TcInfo               Code = 2000
	TcNoCompanion        Code = 2001
	TcMissingProgram     Code = 2002
	TcInvalidStdlib      Code = 2003
	TcUnsupportedVariant Code = 2004
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	DrvInfo:                "Driver information",
	DrvUnusedArgument:      "argument unused during compilation",
	DrvUnknownArgument:     "unknown argument",
	DrvMissingArgValue:     "argument to option is missing",
	DrvNoLinkerLLVMSupport: "linker has no native LLVM bitcode support",
	DrvUnknownTriple:       "target architecture has no companion toolchain mapping",
	DrvInvalidLinkerName:   "invalid linker name",
	DrvNoInputs:            "no input files",
	DrvMultipleOutputs:     "cannot specify -o when generating multiple output files",
	TcInfo:                 "Toolchain information",
	TcNoCompanion:          "companion toolchain not found",
	TcMissingProgram:       "program not found in search paths",
	TcInvalidStdlib:        "invalid C++ standard library name",
	TcUnsupportedVariant:   "unsupported toolchain variant",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
