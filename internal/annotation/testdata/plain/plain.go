package plain

// Plain has no annotations, only an email@example.com address.
var Plain = 1
