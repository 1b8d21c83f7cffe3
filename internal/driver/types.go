package driver

import (
	"path/filepath"
	"strings"
)

// FileType classifies a driver input by what the tools expect to read.
type FileType uint8

const (
	TypeNothing   FileType = iota
	TypeObject
	TypeAsm       // .s, assembled as-is
	TypeAsmCpp    // .S, preprocessed before assembly
	TypeLLVMBC    // .bc
	TypeLLVMIR    // .ll
	TypeArchive   // .a
	TypeSharedLib // .so
	TypeC         // .c
	TypeCXX       // .cc, .cpp, .cxx
	TypeLinkerArg // -l, -Wl, and friends travelling with the inputs
	TypeImage     // link output
	TypeUnknown
)

var typeNames = [...]string{
	TypeNothing:   "nothing",
	TypeObject:    "object",
	TypeAsm:       "assembler",
	TypeAsmCpp:    "assembler-with-cpp",
	TypeLLVMBC:    "llvm-bc",
	TypeLLVMIR:    "llvm-ir",
	TypeArchive:   "archive",
	TypeSharedLib: "shared-object",
	TypeC:         "c",
	TypeCXX:       "c++",
	TypeLinkerArg: "linker-argument",
	TypeImage:     "image",
	TypeUnknown:   "unknown",
}

func (t FileType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsLLVMIR reports whether the type holds LLVM bitcode or textual IR.
func (t FileType) IsLLVMIR() bool { return t == TypeLLVMBC || t == TypeLLVMIR }

// IsAssembly reports whether the assembler accepts the type directly.
func (t FileType) IsAssembly() bool { return t == TypeAsm || t == TypeAsmCpp }

// IsLinkable reports whether the type goes straight to the linker.
func (t FileType) IsLinkable() bool {
	switch t {
	case TypeObject, TypeArchive, TypeSharedLib, TypeLLVMBC, TypeLLVMIR, TypeLinkerArg:
		return true
	default:
		return false
	}
}

// TypeForExtension maps a file extension (without the dot) to a type.
// Unknown extensions are treated as objects, the way a linker would.
func TypeForExtension(ext string) FileType {
	switch ext {
	case "o", "obj":
		return TypeObject
	case "s":
		return TypeAsm
	case "S", "sx":
		return TypeAsmCpp
	case "bc":
		return TypeLLVMBC
	case "ll":
		return TypeLLVMIR
	case "a":
		return TypeArchive
	case "so":
		return TypeSharedLib
	case "c":
		return TypeC
	case "cc", "cp", "cpp", "cxx", "c++", "C":
		return TypeCXX
	}
	return TypeObject
}

// TypeForFile infers the input type from a filename. Versioned shared
// objects such as libfoo.so.1 are recognised.
func TypeForFile(name string) FileType {
	base := filepath.Base(name)
	if strings.Contains(base, ".so.") {
		return TypeSharedLib
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return TypeObject
	}
	return TypeForExtension(ext[1:])
}

// TypeForLanguage maps a -x language name to a type.
func TypeForLanguage(lang string) FileType {
	switch lang {
	case "assembler":
		return TypeAsm
	case "assembler-with-cpp":
		return TypeAsmCpp
	case "c":
		return TypeC
	case "c++":
		return TypeCXX
	case "ir":
		return TypeLLVMIR
	case "none", "":
		return TypeNothing
	}
	return TypeUnknown
}
