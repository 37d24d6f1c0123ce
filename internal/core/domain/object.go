package domain

// Object is a compiled relocatable object produced from generated C source.
type Object struct {
	// Name is the file name prefix the object is written under before linking.
	Name string
	// Bytes is the compiled object.
	Bytes []byte
	// Source is the generated C source the object was compiled from.
	Source []byte
}
