// Package keepnames computes the set of class names a shrinking tool must not rename, starting from
// the annotated elements of a dependency injection module graph.
//
// The engine starts from seed elements and, for each seed type, computes a closure:
//
//  1. The keep name of the type itself, if it denotes a declared class or interface. Primitives,
//     void, type variables, wildcards and arrays are never kept but are still descended into.
//  2. The closure of each generic type argument, depth first.
//  3. The closure of the superclass reference, with type arguments substituted, until the universal
//     root type (java.lang.Object by default) is reached or there is no superclass.
//     Each class's superclass is walked once, for the first instantiation reached.
//
// Keep names use "." between package segments and "$" between nesting levels, matching the binary
// name of the class, eg. "p.Outer$Inner".
//
// Seeds are grouped by the annotation that discovered them:
//
//  1. @Inject fields keep the field type and the class declaring the field.
//  2. @Inject constructors, methods and parameters keep only the declaring class.
//  3. @Provides methods keep the return type.
//  4. @Module classes keep the module class and each type in the module's "injects" list.
package keepnames
