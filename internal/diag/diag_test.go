package diag

import "testing"

func TestBagCapacityAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportWarning(r, DrvUnusedArgument, "-mtune=generic", "argument unused during compilation")
	ReportError(r, DrvNoLinkerLLVMSupport, "a.bc", "linker for 'x86_64-pc-genode' cannot read LLVM bitcode")
	ReportWarning(r, DrvUnusedArgument, "-x", "dropped")

	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != DrvNoLinkerLLVMSupport {
		t.Fatalf("errors must sort first, got %v", items[0].Code)
	}
}

func TestNewBagClampsCapacity(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != ^uint16(0) {
		t.Fatalf("Cap() = %d, want %d", got, ^uint16(0))
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("Cap() = %d, want 0", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for i := 0; i < 3; i++ {
		r.Report(DrvUnusedArgument, SevWarning, "-mcmodel=large", "argument unused during compilation")
	}
	r.Report(DrvUnusedArgument, SevWarning, "-mtune=generic", "argument unused during compilation")
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		New(SevWarning, DrvUnusedArgument, "-mtune=generic", "argument unused\nduring compilation").WithNote("pass it to the compiler instead"),
		New(SevError, DrvNoInputs, "", "no input files"),
	}
	want := "warning DRV1001 '-mtune=generic' argument unused during compilation\n" +
		"note DRV1001 pass it to the compiler instead\n" +
		"error DRV1007 no input files"
	if got := FormatShort(diags, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if got := (Code(42)).ID(); got != "E0000" {
		t.Fatalf("ID() = %q", got)
	}
}
