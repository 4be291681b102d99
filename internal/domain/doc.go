// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, the tasks they own, and the
// categories those tasks are filed under. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
